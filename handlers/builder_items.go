package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// HandleToggleCategory flips a builder category's expansion. The first
// expansion materializes the category's preset starter items.
func HandleToggleCategory(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		categoryID := e.Request.PathValue("categoryId")
		if dealID == "" || categoryID == "" {
			return e.String(http.StatusBadRequest, "Missing required IDs")
		}

		s, err := getBuilderSession(app, dealID)
		if err != nil {
			return e.String(http.StatusNotFound, "Deal not found")
		}

		// Apply any pending field edit first so ops stay ordered.
		s.debounce.Flush()

		s.mu.Lock()
		defer s.mu.Unlock()
		services.ToggleCategory(s.doc, categoryID)
		if _, err := s.persist(app, dealID, actingUser(e.Request)); err != nil {
			log.Printf("toggle_category: persist deal %s: %v", dealID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, buildView(s.doc))
	}
}

// HandleAddItem appends a blank line item to a builder category.
func HandleAddItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		categoryID := e.Request.PathValue("categoryId")
		if dealID == "" || categoryID == "" {
			return e.String(http.StatusBadRequest, "Missing required IDs")
		}

		s, err := getBuilderSession(app, dealID)
		if err != nil {
			return e.String(http.StatusNotFound, "Deal not found")
		}

		s.debounce.Flush()

		s.mu.Lock()
		defer s.mu.Unlock()
		item := services.AddItem(s.doc, categoryID)
		if item == nil {
			return e.String(http.StatusNotFound, "Category not found")
		}
		if _, err := s.persist(app, dealID, actingUser(e.Request)); err != nil {
			log.Printf("add_item: persist deal %s: %v", dealID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, buildView(s.doc))
	}
}

// HandleDeleteItem removes a line item from a builder category.
func HandleDeleteItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		categoryID := e.Request.PathValue("categoryId")
		itemID, err := strconv.Atoi(e.Request.PathValue("itemId"))
		if dealID == "" || categoryID == "" || err != nil {
			return e.String(http.StatusBadRequest, "Missing required IDs")
		}

		s, err := getBuilderSession(app, dealID)
		if err != nil {
			return e.String(http.StatusNotFound, "Deal not found")
		}

		s.debounce.Flush()

		s.mu.Lock()
		defer s.mu.Unlock()
		if !services.DeleteItem(s.doc, categoryID, itemID) {
			return e.String(http.StatusNotFound, "Item not found")
		}
		if _, err := s.persist(app, dealID, actingUser(e.Request)); err != nil {
			log.Printf("delete_item: persist deal %s: %v", dealID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, buildView(s.doc))
	}
}
