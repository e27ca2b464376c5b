// Package services implements the deal builder cost engine: the category/item
// document model, formula evaluation, pricing roll-ups, and export generation.
package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// TaxRate is the fixed rate applied to the builder subtotal.
const TaxRate = 0.08

// Price is either a plain number or a formula with its last evaluated value.
// The evaluated value is authoritative for all totals; the formula text is
// what the editing UI displays.
type Price struct {
	Formula string
	Value   float64
}

// NumericPrice returns a plain numeric price.
func NumericPrice(v float64) Price {
	return Price{Value: v}
}

// FormulaPrice returns a formula price with its evaluated value.
func FormulaPrice(text string, evaluated float64) Price {
	return Price{Formula: text, Value: evaluated}
}

// IsFormula reports whether the price is backed by a formula.
func (p Price) IsFormula() bool {
	return p.Formula != ""
}

// MarshalJSON stores a formula price as its formula string and a numeric
// price as a bare number, matching the persisted snapshot shape.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.IsFormula() {
		return json.Marshal(p.Formula)
	}
	return json.Marshal(p.Value)
}

// UnmarshalJSON accepts either a number or a string. Strings starting with
// "=" hydrate as formulas (re-evaluated by HydrateDocument); other strings
// are coerced to a number, 0 if unparsable.
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.HasPrefix(strings.TrimSpace(s), "=") {
			*p = Price{Formula: s}
		} else {
			*p = Price{Value: ParseNumber(s)}
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*p = Price{Value: f}
		return nil
	}
	*p = Price{}
	return nil
}

// LineItem is one cost row in a category.
type LineItem struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Markup      float64 `json:"markup"`
	Price       Price   `json:"price"`
	Notes       string  `json:"notes"`
}

// Category is a named, ordered group of line items. Item order is
// significant: it defines the row numbers used by formula references.
type Category struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Expanded bool        `json:"expanded"`
	Loaded   bool        `json:"loaded"`
	Items    []*LineItem `json:"items"`
}

// Document is the full builder state for one deal.
type Document struct {
	Categories []*Category `json:"categories"`
	NextID     int         `json:"nextId"`
}

// NewDocument creates an empty document from the category catalog. Every
// category starts collapsed with no items; presets materialize on first
// expansion.
func NewDocument(catalog []CategoryDef) *Document {
	doc := &Document{NextID: 1}
	for _, def := range catalog {
		doc.Categories = append(doc.Categories, &Category{
			ID:    def.ID,
			Name:  def.Name,
			Items: []*LineItem{},
		})
	}
	return doc
}

// AllocateID returns the next item id and advances the counter. Ids are
// strictly increasing and never reused, even after deletions.
func (d *Document) AllocateID() int {
	id := d.NextID
	d.NextID++
	return id
}

// FindCategory returns the category with the given id, or nil.
func (d *Document) FindCategory(categoryID string) *Category {
	for _, cat := range d.Categories {
		if cat.ID == categoryID {
			return cat
		}
	}
	return nil
}

// FindItem returns the item with the given id within the category, or nil.
func (c *Category) FindItem(itemID int) *LineItem {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// FlattenedItems returns every item in global row order: categories in
// document order, items in category order. The slice is rebuilt on every
// call so it can never go stale against the live tree.
func (d *Document) FlattenedItems() []*LineItem {
	var items []*LineItem
	for _, cat := range d.Categories {
		items = append(items, cat.Items...)
	}
	return items
}

// ParseNumber reads s as a float, returning 0 for anything unparsable.
// All engine arithmetic goes through this coercion so NaN never enters a
// total.
func ParseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// numericValue reads a price for aggregation, guarding against non-finite
// values leaking in through hydration.
func numericValue(p Price) float64 {
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return 0
	}
	return p.Value
}
