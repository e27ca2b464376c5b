package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// itemView is the API shape of one line item. Price always carries the
// evaluated number; formula holds the display text when one is set.
type itemView struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Markup      float64 `json:"markup"`
	Price       float64 `json:"price"`
	Formula     string  `json:"formula,omitempty"`
	Notes       string  `json:"notes"`
}

type categoryView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Expanded bool       `json:"expanded"`
	Loaded   bool       `json:"loaded"`
	Items    []itemView `json:"items"`
	Total    float64    `json:"total"`
}

type builderView struct {
	Categories []categoryView         `json:"categories"`
	Totals     services.BuilderTotals `json:"totals"`
}

// buildView projects the live document into its API shape.
func buildView(doc *services.Document) builderView {
	view := builderView{Totals: services.CalcBuilderTotals(doc)}
	for _, cat := range doc.Categories {
		cv := categoryView{
			ID:       cat.ID,
			Name:     cat.Name,
			Expanded: cat.Expanded,
			Loaded:   cat.Loaded,
			Items:    []itemView{},
			Total:    services.CalcCategoryTotal(cat),
		}
		for _, item := range cat.Items {
			cv.Items = append(cv.Items, itemView{
				ID:          item.ID,
				Description: item.Description,
				Cost:        item.Cost,
				Markup:      item.Markup,
				Price:       item.Price.Value,
				Formula:     item.Price.Formula,
				Notes:       item.Notes,
			})
		}
		view.Categories = append(view.Categories, cv)
	}
	return view
}

// HandleBuilderView returns the deal's builder document with derived
// per-category and overall totals.
func HandleBuilderView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		if dealID == "" {
			return e.String(http.StatusBadRequest, "Missing deal ID")
		}

		s, err := getBuilderSession(app, dealID)
		if err != nil {
			return e.String(http.StatusNotFound, "Deal not found")
		}

		s.mu.Lock()
		view := buildView(s.doc)
		s.mu.Unlock()
		return e.JSON(http.StatusOK, view)
	}
}
