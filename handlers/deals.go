package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// dealView is the API shape of a deal record's summary.
type dealView struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Buyer    string                 `json:"buyer"`
	Status   string                 `json:"status"`
	SalesRep string                 `json:"salesRep"`
	Totals   services.BuilderTotals `json:"totals"`
}

func dealViewFromRecord(record *core.Record) dealView {
	view := dealView{
		ID:       record.Id,
		Name:     record.GetString("name"),
		Buyer:    record.GetString("buyer_name"),
		Status:   record.GetString("status"),
		SalesRep: record.GetString("sales_rep"),
	}
	if raw := record.GetString("builder"); raw != "" {
		if snap, err := services.DecodeSnapshot([]byte(raw)); err == nil {
			view.Totals = snap.Totals
		}
	}
	return view
}

// HandleDealList lists deals, optionally filtered by status.
func HandleDealList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealsCol, err := app.FindCollectionByNameOrId("deals")
		if err != nil {
			log.Printf("deal_list: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filter := ""
		params := map[string]any{}
		if status := e.Request.URL.Query().Get("status"); status != "" {
			filter = "status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter(dealsCol, filter, "-created", 0, 0, params)
		if err != nil {
			records = nil
		}

		views := []dealView{}
		for _, record := range records {
			views = append(views, dealViewFromRecord(record))
		}
		return e.JSON(http.StatusOK, views)
	}
}

// HandleDealCreate creates a deal. The builder document starts empty and is
// materialized on first builder access.
func HandleDealCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		name := e.Request.FormValue("name")
		if name == "" {
			return e.String(http.StatusBadRequest, "Deal name is required")
		}

		dealsCol, err := app.FindCollectionByNameOrId("deals")
		if err != nil {
			log.Printf("deal_create: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(dealsCol)
		record.Set("name", name)
		record.Set("buyer_name", e.Request.FormValue("buyer_name"))
		record.Set("status", "prospect")
		record.Set("sales_rep", actingUser(e.Request))

		if err := app.Save(record); err != nil {
			log.Printf("deal_create: save: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusCreated, dealViewFromRecord(record))
	}
}

// HandleDealView returns one deal's summary.
func HandleDealView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		if dealID == "" {
			return e.String(http.StatusBadRequest, "Missing deal ID")
		}

		record, err := app.FindRecordById("deals", dealID)
		if err != nil {
			return e.String(http.StatusNotFound, "Deal not found")
		}
		return e.JSON(http.StatusOK, dealViewFromRecord(record))
	}
}

// HandleDealDelete deletes a deal and discards its in-memory edit session.
func HandleDealDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		if dealID == "" {
			return e.String(http.StatusBadRequest, "Missing deal ID")
		}

		record, err := app.FindRecordById("deals", dealID)
		if err != nil {
			log.Printf("deal_delete: not found %s: %v", dealID, err)
			return e.String(http.StatusNotFound, "Deal not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("deal_delete: error deleting %s: %v", dealID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		dropBuilderSession(dealID)
		return e.JSON(http.StatusOK, map[string]any{"deleted": dealID})
	}
}
