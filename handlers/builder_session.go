package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/types"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// builderSession holds the live builder document for one deal being edited,
// plus the debouncer that batches its field edits. A deal is edited by a
// single logical actor, so one session per deal id is enough; the mutex
// only fences the debounce timer goroutine against request goroutines.
type builderSession struct {
	mu       sync.Mutex
	doc      *services.Document
	debounce *services.Debouncer
}

var (
	sessionsMu sync.Mutex
	sessions   = make(map[string]*builderSession)
)

// getBuilderSession returns the session for a deal, creating it from the
// persisted snapshot (or a fresh catalog document) on first access.
func getBuilderSession(app *pocketbase.PocketBase, dealID string) (*builderSession, error) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()

	if s, ok := sessions[dealID]; ok {
		return s, nil
	}

	record, err := app.FindRecordById("deals", dealID)
	if err != nil {
		return nil, fmt.Errorf("deal not found: %w", err)
	}

	var doc *services.Document
	raw := record.GetString("builder")
	if raw == "" {
		doc = services.NewDocument(services.DealCategories)
	} else {
		snap, err := services.DecodeSnapshot([]byte(raw))
		if err != nil {
			log.Printf("builder: deal %s has an unreadable snapshot, starting fresh: %v", dealID, err)
			doc = services.NewDocument(services.DealCategories)
		} else {
			doc = services.HydrateDocument(snap)
		}
	}

	s := &builderSession{
		doc:      doc,
		debounce: services.NewDebouncer(services.DebounceInterval),
	}
	sessions[dealID] = s
	return s, nil
}

// dropBuilderSession discards the in-memory session for a deal, cancelling
// any pending debounced edit. Called when the deal is deleted.
func dropBuilderSession(dealID string) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	if s, ok := sessions[dealID]; ok {
		s.debounce.Stop()
		delete(sessions, dealID)
	}
}

// persist writes the session's document back to the deal record as a fresh
// snapshot. Caller must hold s.mu.
func (s *builderSession) persist(app *pocketbase.PocketBase, dealID, savedBy string) (services.Snapshot, error) {
	snap := services.MakeSnapshot(s.doc, savedBy, time.Now())
	blob, err := services.EncodeSnapshot(snap)
	if err != nil {
		return services.Snapshot{}, err
	}

	record, err := app.FindRecordById("deals", dealID)
	if err != nil {
		return services.Snapshot{}, fmt.Errorf("deal not found: %w", err)
	}
	record.Set("builder", types.JSONRaw(blob))
	if err := app.Save(record); err != nil {
		return services.Snapshot{}, fmt.Errorf("save deal: %w", err)
	}
	return snap, nil
}

// actingUser extracts the acting user's identifier for audit metadata.
// The engine records it uninterpreted.
func actingUser(r *http.Request) string {
	if user := r.Header.Get("X-User-Id"); user != "" {
		return user
	}
	return "anonymous"
}
