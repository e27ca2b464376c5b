package services

// Reference columns map to line item fields: A is cost, B is markup, C is
// price. Rows index the global flattening of the document (categories in
// order, items in order within each category).

// ResolveRef returns the value of the given column at the 0-based flattened
// row index. Unknown columns and out-of-range rows resolve to 0.
//
// There is no cycle detection: a formula that references its own row's C
// column reads the price's current (previously evaluated) value.
func ResolveRef(doc *Document, column byte, row int) float64 {
	items := doc.FlattenedItems()
	if row < 0 || row >= len(items) {
		return 0
	}
	item := items[row]
	switch column {
	case 'A':
		return item.Cost
	case 'B':
		return item.Markup
	case 'C':
		return numericValue(item.Price)
	default:
		return 0
	}
}
