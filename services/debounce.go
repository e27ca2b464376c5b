package services

import (
	"sync"
	"time"
)

// DebounceInterval is the quiet period before a pending edit fires.
const DebounceInterval = 300 * time.Millisecond

// Debouncer collapses a rapid sequence of calls into the last one: each
// Call replaces any pending call, and the surviving call runs once the
// quiet period elapses with no newer call. One Debouncer serves one logical
// editing session; edits to different items through the same instance still
// collapse to the last call.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	timer   *time.Timer
	pending func()
}

// NewDebouncer returns a Debouncer with the given quiet period. A zero or
// negative duration falls back to DebounceInterval.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DebounceInterval
	}
	return &Debouncer{quiet: quiet}
}

// Call schedules fn to run after the quiet period, cancelling any pending
// call scheduled earlier.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs any pending call immediately instead of waiting out the quiet
// period.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop discards any pending call without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.timer = nil
}
