package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
	"github.com/mbarling-arch/MobileCRM-sub001/testhelpers"
)

func TestHandleBuilderView_FreshDeal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deal := testhelpers.CreateTestDeal(t, app, "Fresh Deal")

	handler := HandleBuilderView(app)

	req := httptest.NewRequest(http.MethodGet, "/deals/"+deal.Id+"/builder", nil)
	req.SetPathValue("id", deal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var view builderView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	// A fresh deal starts with the full category catalog, all collapsed
	// and unloaded with no items.
	if len(view.Categories) != len(services.DealCategories) {
		t.Fatalf("got %d categories, want %d", len(view.Categories), len(services.DealCategories))
	}
	for _, cat := range view.Categories {
		if cat.Expanded || cat.Loaded {
			t.Errorf("category %s should start collapsed and unloaded", cat.ID)
		}
		if len(cat.Items) != 0 {
			t.Errorf("category %s should start empty, has %d items", cat.ID, len(cat.Items))
		}
	}
	if view.Totals.Subtotal != 0 || view.Totals.Total != 0 {
		t.Errorf("fresh deal totals = %+v, want zeros", view.Totals)
	}
}

func TestHandleBuilderView_LoadsPersistedSnapshot(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	doc := services.NewDocument(services.DealCategories)
	services.ToggleCategory(doc, "land-purchase")
	firstID := doc.FindCategory("land-purchase").Items[0].ID
	services.UpdateItemField(doc, "land-purchase", firstID, services.FieldCost, "42000")
	deal := testhelpers.CreateTestDealWithBuilder(t, app, "Saved Deal", doc)

	handler := HandleBuilderView(app)

	req := httptest.NewRequest(http.MethodGet, "/deals/"+deal.Id+"/builder", nil)
	req.SetPathValue("id", deal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var view builderView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	var land *categoryView
	for i := range view.Categories {
		if view.Categories[i].ID == "land-purchase" {
			land = &view.Categories[i]
		}
	}
	if land == nil {
		t.Fatal("land-purchase category missing from view")
	}
	if !land.Expanded || !land.Loaded {
		t.Errorf("land-purchase should be expanded and loaded, got %+v", land)
	}
	if len(land.Items) == 0 {
		t.Error("expected preset items in land-purchase")
	}
	if view.Totals.Subtotal != 42000 {
		t.Errorf("subtotal = %v, want 42000", view.Totals.Subtotal)
	}
}

func TestHandleBuilderView_UnknownDeal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBuilderView(app)

	req := httptest.NewRequest(http.MethodGet, "/deals/nope/builder", nil)
	req.SetPathValue("id", "nope123456789")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
