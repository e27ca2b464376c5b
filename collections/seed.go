package collections

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// seedEdit is one field edit applied while building the demo document.
type seedEdit struct {
	categoryID string
	itemOffset int // index into the category's items after preset load
	field      string
	value      string
}

// Seed inserts a demo deal with a populated builder document when the deals
// collection is empty. The document is built through the engine itself so
// the seeded snapshot matches what real editing produces.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if deals already exist ─────────────────────
	dealsCol, err := app.FindCollectionByNameOrId("deals")
	if err != nil {
		return fmt.Errorf("seed: could not find deals collection: %w", err)
	}
	existing, err := app.FindAllRecords(dealsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query deals: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: deals collection is empty – inserting demo deal …")

	doc := services.NewDocument(services.DealCategories)

	// Expanding materializes each category's preset starter items.
	services.ToggleCategory(doc, "land-purchase")
	services.ToggleCategory(doc, "site-prep")
	services.ToggleCategory(doc, "home-options")

	edits := []seedEdit{
		{"land-purchase", 0, services.FieldCost, "38500"},
		{"land-purchase", 0, services.FieldMarkup, "4500"},
		{"land-purchase", 1, services.FieldCost, "2100"},
		{"site-prep", 0, services.FieldCost, "650"},
		{"site-prep", 1, services.FieldCost, "4800"},
		{"site-prep", 1, services.FieldMarkup, "700"},
		{"home-options", 0, services.FieldCost, "89900"},
		{"home-options", 0, services.FieldMarkup, "12500"},
		{"home-options", 1, services.FieldCost, "3400"},
	}
	for _, e := range edits {
		cat := doc.FindCategory(e.categoryID)
		if cat == nil || e.itemOffset >= len(cat.Items) {
			continue
		}
		services.UpdateItemField(doc, e.categoryID, cat.Items[e.itemOffset].ID, e.field, e.value)
	}

	snap := services.MakeSnapshot(doc, "seed", time.Now())
	blob, err := services.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("seed: could not encode builder snapshot: %w", err)
	}

	record := core.NewRecord(dealsCol)
	record.Set("name", "Demo Deal – Oakwood Lot 14")
	record.Set("buyer_name", "Pat Sample")
	record.Set("status", "prospect")
	record.Set("sales_rep", "demo")
	record.Set("builder", types.JSONRaw(blob))

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: could not save demo deal: %w", err)
	}

	log.Println("seed: demo deal created, builder total " +
		strconv.FormatFloat(snap.Totals.Total, 'f', 2, 64))
	return nil
}
