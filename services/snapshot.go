package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the persisted form of a builder document, as written to and
// read from the deal record's builder field. Field names are stable: the
// document store round-trips them as-is.
type Snapshot struct {
	Categories []*Category   `json:"categories"`
	Totals     BuilderTotals `json:"totals"`
	UpdatedAt  string        `json:"updatedAt"`
	SavedBy    string        `json:"savedBy"`
	Revision   string        `json:"revision"`
}

// MakeSnapshot captures the document with derived totals and audit
// metadata. Each save gets a fresh revision id; savedBy is recorded as
// supplied, uninterpreted.
func MakeSnapshot(doc *Document, savedBy string, now time.Time) Snapshot {
	return Snapshot{
		Categories: doc.Categories,
		Totals:     CalcBuilderTotals(doc),
		UpdatedAt:  now.UTC().Format(time.RFC3339),
		SavedBy:    savedBy,
		Revision:   uuid.NewString(),
	}
}

// EncodeSnapshot serializes a snapshot for storage.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// HydrateDocument rebuilds a live document from a snapshot: every category
// is marked loaded (presets never materialize twice for a persisted
// document), the id counter resumes above the highest id present, and
// formula prices are re-evaluated with one forward pass per category.
func HydrateDocument(snap Snapshot) *Document {
	doc := &Document{Categories: snap.Categories}
	maxID := 0
	for _, cat := range doc.Categories {
		cat.Loaded = true
		if cat.Items == nil {
			cat.Items = []*LineItem{}
		}
		for _, item := range cat.Items {
			if item.ID > maxID {
				maxID = item.ID
			}
		}
	}
	doc.NextID = maxID + 1
	for _, cat := range doc.Categories {
		RecalcCategoryFormulas(doc, cat)
	}
	return doc
}
