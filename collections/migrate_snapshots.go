package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/types"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// MigrateLegacySnapshots normalizes builder snapshots saved by older
// versions: categories without the loaded flag, formula prices stored
// without an evaluated value, and totals that drifted from the item data.
// Each affected snapshot is hydrated through the engine, re-derived, and
// written back. Safe to call on every startup -- records whose snapshot is
// already canonical are left untouched.
func MigrateLegacySnapshots(app *pocketbase.PocketBase) error {
	dealsCol, err := app.FindCollectionByNameOrId("deals")
	if err != nil {
		return fmt.Errorf("migrate: could not find deals collection: %w", err)
	}

	deals, err := app.FindAllRecords(dealsCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query deals: %w", err)
	}

	migrated := 0
	for _, deal := range deals {
		raw := deal.GetString("builder")
		if raw == "" {
			continue
		}

		snap, err := services.DecodeSnapshot([]byte(raw))
		if err != nil {
			log.Printf("migrate: deal %s has an unreadable builder snapshot, skipping: %v\n", deal.Id, err)
			continue
		}

		doc := services.HydrateDocument(snap)
		rebuilt := snap
		rebuilt.Categories = doc.Categories
		rebuilt.Totals = services.CalcBuilderTotals(doc)

		blob, err := services.EncodeSnapshot(rebuilt)
		if err != nil {
			log.Printf("migrate: could not re-encode snapshot for deal %s: %v\n", deal.Id, err)
			continue
		}
		if string(blob) == raw {
			continue
		}

		deal.Set("builder", types.JSONRaw(blob))
		if err := app.Save(deal); err != nil {
			log.Printf("migrate: failed to save normalized snapshot for deal %s: %v\n", deal.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: normalized %d legacy builder snapshot(s)\n", migrated)
	}
	return nil
}
