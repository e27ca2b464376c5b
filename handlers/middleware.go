package handlers

import (
	"log"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// RequestLogMiddleware logs each API request with its duration. Bound on the
// router group so every deal and builder route goes through it.
func RequestLogMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()
		log.Printf("%s %s (%s)", e.Request.Method, e.Request.URL.Path, time.Since(start).Round(time.Millisecond))
		return err
	}
}
