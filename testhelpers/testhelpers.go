// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"github.com/mbarling-arch/MobileCRM-sub001/collections"
	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestDeal creates a deal record with the given name and returns it.
func CreateTestDeal(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("deals")
	if err != nil {
		t.Fatalf("failed to find deals collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("buyer_name", "Test Buyer")
	record.Set("status", "prospect")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test deal: %v", err)
	}

	return record
}

// CreateTestDealWithBuilder creates a deal whose builder snapshot is taken
// from the given document.
func CreateTestDealWithBuilder(t *testing.T, app *pocketbase.PocketBase, name string, doc *services.Document) *core.Record {
	t.Helper()

	record := CreateTestDeal(t, app, name)

	snap := services.MakeSnapshot(doc, "test", time.Now())
	blob, err := services.EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("failed to encode builder snapshot: %v", err)
	}
	record.Set("builder", types.JSONRaw(blob))
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save builder snapshot: %v", err)
	}

	return record
}
