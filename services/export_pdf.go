package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders a deal sheet PDF from export data using maroto/v2.
// Categories print as sections in document order; item notes word-wrap
// inside their column. Returns the raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addDealHeader(m, data)

	for _, section := range data.Sections {
		addSectionHeader(m, section.Name)
		addItemTableHeader(m)
		for _, r := range section.Rows {
			addItemRow(m, r)
		}
		addSectionTotal(m, section.Total)
	}

	addTotalsSummary(m, data)
	addGeneratedFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addDealHeader adds the deal name, buyer, and save date to the PDF.
func addDealHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.DealName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Buyer: %s", data.Buyer), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.SavedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addSectionHeader adds a category name banner row.
func addSectionHeader(m core.Maroto, name string) {
	m.AddRows(row.New(3))
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(name, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			).WithStyle(&props.Cell{
				BackgroundColor: &props.Color{Red: 230, Green: 234, Blue: 238},
			}),
		),
	)
}

// addItemTableHeader adds the column header row for a category's items.
func addItemTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Cost", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Markup", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Price", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Notes", headerTextLeft),
			).WithStyle(&headerCell),
		),
	)
}

// addItemRow adds one line item row. Formula-backed prices print their
// evaluated value; the formula text shows alongside the notes.
func addItemRow(m core.Maroto, r ExportRow) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	notes := r.Notes
	if r.Formula != "" {
		if notes != "" {
			notes = r.Formula + ", " + notes
		} else {
			notes = r.Formula
		}
	}

	m.AddRows(
		row.New(7).Add(
			col.New(4).Add(text.New(r.Description, leftText)),
			col.New(2).Add(text.New(FormatUSD(r.Cost), rightText)),
			col.New(2).Add(text.New(FormatUSD(r.Markup), rightText)),
			col.New(2).Add(text.New(FormatUSD(r.Price), rightText)),
			col.New(2).Add(text.New(notes, leftText)),
		),
	)
}

// addSectionTotal adds the category total row.
func addSectionTotal(m core.Maroto, total float64) {
	totalBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	totalCell := &props.Cell{BackgroundColor: totalBg}
	totalText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(10).Add(
				text.New("Category Total", totalText),
			).WithStyle(totalCell),
			col.New(2).Add(
				text.New(FormatUSD(total), totalText),
			).WithStyle(totalCell),
		),
	)
}

// addTotalsSummary adds the subtotal / tax / grand total block.
func addTotalsSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	addSummaryRow := func(label string, amount float64) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatUSD(amount), labelStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	addSummaryRow("Subtotal", data.Subtotal)
	addSummaryRow(fmt.Sprintf("Tax (%.0f%%)", TaxRate*100), data.Tax)
	addSummaryRow("Total", data.Total)
}

// addGeneratedFooter adds the generated-date line at the bottom.
func addGeneratedFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.SavedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
