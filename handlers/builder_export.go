package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/mbarling-arch/MobileCRM-sub001/services"
)

// buildDealExportData flushes the deal's edit session and assembles the
// export traversal: deal metadata plus the builder's categories and totals
// in stable document order.
func buildDealExportData(app *pocketbase.PocketBase, dealID string) (services.ExportData, error) {
	record, err := app.FindRecordById("deals", dealID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("deal not found: %w", err)
	}

	s, err := getBuilderSession(app, dealID)
	if err != nil {
		return services.ExportData{}, err
	}
	s.debounce.Flush()

	s.mu.Lock()
	defer s.mu.Unlock()
	return services.BuildExportData(
		s.doc,
		record.GetString("name"),
		record.GetString("buyer_name"),
		time.Now().Format("2006-01-02"),
	), nil
}

// sanitizeFilename makes a deal name safe for a Content-Disposition filename.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleBuilderExportExcel returns a handler that generates and downloads
// an Excel workbook of the deal builder.
func HandleBuilderExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		if dealID == "" {
			return e.String(http.StatusBadRequest, "Missing deal ID")
		}

		data, err := buildDealExportData(app, dealID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Deal not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Deal_%s_%d.xlsx", sanitizeFilename(data.DealName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleBuilderExportPDF returns a handler that generates and downloads a
// deal sheet PDF.
func HandleBuilderExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		dealID := e.Request.PathValue("id")
		if dealID == "" {
			return e.String(http.StatusBadRequest, "Missing deal ID")
		}

		data, err := buildDealExportData(app, dealID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Deal not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Deal_%s_%d.pdf", sanitizeFilename(data.DealName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
