package services

// BuilderTotals holds the rolled-up totals for a builder document.
type BuilderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CalcCategoryTotal sums the item prices in one category. Formula prices
// contribute their last evaluated value.
func CalcCategoryTotal(cat *Category) float64 {
	var sum float64
	for _, item := range cat.Items {
		sum += numericValue(item.Price)
	}
	return sum
}

// CalcBuilderTotals computes the document subtotal, tax at the fixed rate,
// and grand total. Totals are always derived from the live tree, never
// stored authoritatively.
func CalcBuilderTotals(doc *Document) BuilderTotals {
	var subtotal float64
	for _, cat := range doc.Categories {
		subtotal += CalcCategoryTotal(cat)
	}
	tax := subtotal * TaxRate
	return BuilderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
