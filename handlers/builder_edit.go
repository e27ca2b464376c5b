package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// HandleItemFieldEdit schedules one field edit through the session's
// debouncer: a burst of edits within the quiet period collapses to the last
// one, which is applied and persisted when the timer fires. The response is
// 202 because the edit has been accepted, not yet applied.
//
// Form fields: category, field, value.
func HandleItemFieldEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		itemID, err := strconv.Atoi(e.Request.PathValue("itemId"))
		if dealID == "" || err != nil {
			return e.String(http.StatusBadRequest, "Missing required IDs")
		}

		categoryID := e.Request.FormValue("category")
		field := e.Request.FormValue("field")
		value := e.Request.FormValue("value")
		if categoryID == "" || field == "" {
			return e.String(http.StatusBadRequest, "Missing category or field")
		}

		s, err := getBuilderSession(app, dealID)
		if err != nil {
			return e.String(http.StatusNotFound, "Deal not found")
		}

		savedBy := actingUser(e.Request)
		s.debounce.Call(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			services.UpdateItemField(s.doc, categoryID, itemID, field, value)
			if _, err := s.persist(app, dealID, savedBy); err != nil {
				log.Printf("field_edit: persist deal %s: %v", dealID, err)
			}
		})

		return e.JSON(http.StatusAccepted, map[string]any{"scheduled": true})
	}
}

// HandleBuilderSave flushes any pending edit and persists the document
// immediately, returning the saved snapshot's revision and totals.
func HandleBuilderSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		if dealID == "" {
			return e.String(http.StatusBadRequest, "Missing deal ID")
		}

		s, err := getBuilderSession(app, dealID)
		if err != nil {
			return e.String(http.StatusNotFound, "Deal not found")
		}

		s.debounce.Flush()

		s.mu.Lock()
		defer s.mu.Unlock()
		snap, err := s.persist(app, dealID, actingUser(e.Request))
		if err != nil {
			log.Printf("builder_save: persist deal %s: %v", dealID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, map[string]any{
			"revision":  snap.Revision,
			"updatedAt": snap.UpdatedAt,
			"totals":    snap.Totals,
		})
	}
}
