package collections_test

import (
	"testing"

	"github.com/mbarling-arch/MobileCRM-sub001/collections"
	"github.com/mbarling-arch/MobileCRM-sub001/services"
	"github.com/mbarling-arch/MobileCRM-sub001/testhelpers"
)

func TestSeed_CreatesDemoDeal(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	dealsCol, _ := app.FindCollectionByNameOrId("deals")
	deals, err := app.FindAllRecords(dealsCol)
	if err != nil {
		t.Fatalf("query deals error: %v", err)
	}
	if len(deals) != 1 {
		t.Fatalf("expected 1 deal, got %d", len(deals))
	}

	deal := deals[0]
	if deal.GetString("name") != "Demo Deal – Oakwood Lot 14" {
		t.Errorf("deal name = %q", deal.GetString("name"))
	}
	if deal.GetString("status") != "prospect" {
		t.Errorf("deal status = %q, want 'prospect'", deal.GetString("status"))
	}

	// The builder snapshot decodes and carries real engine output.
	raw := deal.GetString("builder")
	if raw == "" {
		t.Fatal("expected a builder snapshot on the demo deal")
	}
	snap, err := services.DecodeSnapshot([]byte(raw))
	if err != nil {
		t.Fatalf("demo snapshot unreadable: %v", err)
	}
	if snap.Revision == "" || snap.UpdatedAt == "" || snap.SavedBy != "seed" {
		t.Errorf("snapshot metadata = %+v", snap)
	}
	if len(snap.Categories) != len(services.DealCategories) {
		t.Errorf("snapshot has %d categories, want %d", len(snap.Categories), len(services.DealCategories))
	}
	if snap.Totals.Subtotal <= 0 {
		t.Errorf("demo subtotal = %v, want > 0", snap.Totals.Subtotal)
	}
	wantTax := snap.Totals.Subtotal * services.TaxRate
	if diff := snap.Totals.Tax - wantTax; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("demo tax = %v, want %v", snap.Totals.Tax, wantTax)
	}

	// Expanded categories carry their preset items with edited costs applied.
	doc := services.HydrateDocument(snap)
	land := doc.FindCategory("land-purchase")
	if land == nil || len(land.Items) == 0 {
		t.Fatal("expected land-purchase preset items in demo deal")
	}
	if land.Items[0].Cost != 38500 || land.Items[0].Markup != 4500 {
		t.Errorf("land item 0 = cost %v markup %v, want 38500/4500", land.Items[0].Cost, land.Items[0].Markup)
	}
	if got := land.Items[0].Price.Value; got != 43000 {
		t.Errorf("land item 0 price = %v, want 43000 (cost+markup)", got)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	dealsCol, _ := app.FindCollectionByNameOrId("deals")
	deals, _ := app.FindAllRecords(dealsCol)
	if len(deals) != 1 {
		t.Errorf("expected 1 deal after double seed, got %d", len(deals))
	}
}

func TestSeed_SkipsWhenDealsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestDeal(t, app, "Existing Deal")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	dealsCol, _ := app.FindCollectionByNameOrId("deals")
	deals, _ := app.FindAllRecords(dealsCol)
	if len(deals) != 1 {
		t.Errorf("expected seed to skip, got %d deals", len(deals))
	}
	if deals[0].GetString("name") != "Existing Deal" {
		t.Errorf("unexpected deal: %q", deals[0].GetString("name"))
	}
}
