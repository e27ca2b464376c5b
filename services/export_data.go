package services

// ExportRow represents a single line item row in the deal sheet export.
type ExportRow struct {
	Description string
	Cost        float64
	Markup      float64
	Price       float64
	Formula     string // formula text when the price is formula-backed
	Notes       string
}

// ExportSection is one category's rows plus its total.
type ExportSection struct {
	Name  string
	Rows  []ExportRow
	Total float64
}

// ExportData holds everything the PDF and Excel renderers need. Sections
// and rows follow the document's stable iteration order so the exported
// sheet always matches the on-screen order.
type ExportData struct {
	DealName  string
	Buyer     string
	SavedDate string
	Sections  []ExportSection
	Subtotal  float64
	Tax       float64
	Total     float64
}

// BuildExportData flattens a builder document into export form. Collapsed
// categories are included: expansion is UI state, not document content.
func BuildExportData(doc *Document, dealName, buyer, savedDate string) ExportData {
	data := ExportData{
		DealName:  dealName,
		Buyer:     buyer,
		SavedDate: savedDate,
	}
	for _, cat := range doc.Categories {
		section := ExportSection{Name: cat.Name, Total: CalcCategoryTotal(cat)}
		for _, item := range cat.Items {
			section.Rows = append(section.Rows, ExportRow{
				Description: item.Description,
				Cost:        item.Cost,
				Markup:      item.Markup,
				Price:       numericValue(item.Price),
				Formula:     item.Price.Formula,
				Notes:       item.Notes,
			})
		}
		data.Sections = append(data.Sections, section)
	}
	totals := CalcBuilderTotals(doc)
	data.Subtotal = totals.Subtotal
	data.Tax = totals.Tax
	data.Total = totals.Total
	return data
}
