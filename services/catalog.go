package services

// PresetItem is a starter line item materialized when a category is first
// expanded.
type PresetItem struct {
	Description string
	Cost        float64
	Markup      float64
	Notes       string
}

// CategoryDef describes one catalog category and its preset starter items.
type CategoryDef struct {
	ID      string
	Name    string
	Presets []PresetItem
}

// DealCategories is the fixed category catalog for the deal builder, in
// display order. The catalog is configuration, not engine state: documents
// are created from it and preset items are pulled from it on first
// expansion.
var DealCategories = []CategoryDef{
	{
		ID:   "land-purchase",
		Name: "Land Purchase Price",
		Presets: []PresetItem{
			{Description: "Land purchase price", Cost: 0, Markup: 0},
			{Description: "Closing costs", Cost: 0, Markup: 0},
		},
	},
	{
		ID:   "site-prep",
		Name: "Site Preparation",
		Presets: []PresetItem{
			{Description: "Survey", Cost: 0, Markup: 0},
			{Description: "Clearing and grading", Cost: 0, Markup: 0},
			{Description: "Driveway / culvert", Cost: 0, Markup: 0},
			{Description: "Pad and skirting", Cost: 0, Markup: 0},
		},
	},
	{
		ID:   "utilities",
		Name: "Utilities",
		Presets: []PresetItem{
			{Description: "Electric service / pole", Cost: 0, Markup: 0},
			{Description: "Water / well", Cost: 0, Markup: 0},
			{Description: "Septic system", Cost: 0, Markup: 0},
		},
	},
	{
		ID:   "home-options",
		Name: "Home & Options",
		Presets: []PresetItem{
			{Description: "Base home price", Cost: 0, Markup: 0},
			{Description: "Delivery and setup", Cost: 0, Markup: 0},
			{Description: "A/C unit", Cost: 0, Markup: 0},
			{Description: "Steps and decks", Cost: 0, Markup: 0},
		},
	},
	{
		ID:      "fees",
		Name:    "Fees & Permits",
		Presets: []PresetItem{},
	},
}

// PresetsFor returns the preset starter items for a category id, or nil if
// the category has none.
func PresetsFor(categoryID string) []PresetItem {
	for _, def := range DealCategories {
		if def.ID == categoryID {
			return def.Presets
		}
	}
	return nil
}
