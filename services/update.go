package services

import "strings"

// Editable line item fields accepted by UpdateItemField.
const (
	FieldDescription = "description"
	FieldCost        = "cost"
	FieldMarkup      = "markup"
	FieldPrice       = "price"
	FieldNotes       = "notes"
)

// UpdateItemField applies a single field edit to one line item and
// re-derives dependent values:
//
//   - editing cost or markup re-derives that item's price as cost + markup,
//     replacing any formula the price previously held;
//   - editing price to an "="-prefixed string evaluates the formula against
//     the document as it stands before the price is finalized, and stores
//     the formula with its evaluated value;
//   - any other price edit stores a plain number (unparsable input is 0).
//
// After the edit, every formula price in the same category is re-evaluated
// in a single forward pass. The pass does not iterate to a fixed point and
// does not touch other categories; see RecalcCategoryFormulas.
//
// Unknown category or item ids make the whole call a no-op.
func UpdateItemField(doc *Document, categoryID string, itemID int, field, value string) {
	cat := doc.FindCategory(categoryID)
	if cat == nil {
		return
	}
	item := cat.FindItem(itemID)
	if item == nil {
		return
	}

	// A freshly assigned formula keeps its pre-mutation evaluation through
	// the fixup pass; everything else in the category is re-evaluated.
	var skip *LineItem

	switch field {
	case FieldDescription:
		item.Description = value
	case FieldNotes:
		item.Notes = value
	case FieldCost:
		item.Cost = ParseNumber(value)
		item.Price = NumericPrice(item.Cost + item.Markup)
	case FieldMarkup:
		item.Markup = ParseNumber(value)
		item.Price = NumericPrice(item.Cost + item.Markup)
	case FieldPrice:
		if strings.HasPrefix(strings.TrimSpace(value), "=") {
			// Evaluate before assigning so the formula sees the
			// pre-mutation price of its own row.
			evaluated := EvaluateFormula(doc, value)
			item.Price = FormulaPrice(value, evaluated)
			skip = item
		} else {
			item.Price = NumericPrice(ParseNumber(value))
		}
	default:
		return
	}

	recalcCategoryFormulas(doc, cat, skip)
}

// RecalcCategoryFormulas re-evaluates every formula price in the category
// in item order, replacing each stored value as it goes. A single forward
// pass is the contract: chained formulas inside one category settle in item
// order, and formulas in other categories are not refreshed until something
// in their own category is edited.
func RecalcCategoryFormulas(doc *Document, cat *Category) {
	recalcCategoryFormulas(doc, cat, nil)
}

func recalcCategoryFormulas(doc *Document, cat *Category, skip *LineItem) {
	for _, item := range cat.Items {
		if item == skip {
			continue
		}
		if item.Price.IsFormula() {
			item.Price.Value = EvaluateFormula(doc, item.Price.Formula)
		}
	}
}
