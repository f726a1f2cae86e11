package infra

// pdf.go — price-list report generation using go-pdf/fpdf.
// Produces an A4 table of every product with its raw material, base price
// and current price, for the admin panel's export button.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mnk3936/Highway-metals/internal/model"

	"github.com/go-pdf/fpdf"
)

// GeneratePriceListPDF writes the current price list to storagePath
// (created if needed) and returns the absolute path of the file.
// Products are expected with RawMaterial preloaded.
func GeneratePriceListPDF(products []model.Product, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	now := time.Now()
	fileName := fmt.Sprintf("price_list_%s.pdf", now.Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Product Price List", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Generated "+now.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Column layout ────────────────────────────────────────────────────────
	col1 := contentW * 0.30 // product
	col2 := contentW * 0.22 // raw material
	col3 := contentW * 0.16 // category
	col4 := contentW * 0.16 // base price
	col5 := contentW * 0.16 // current price

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Raw Material", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Category", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, "Base Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "Current Price", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range products {
		name := p.Name
		if len(name) > 34 {
			name = name[:33] + "…"
		}
		category := ""
		if p.Category != nil {
			category = *p.Category
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, p.RawMaterial.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, category, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+p.BasePrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "$"+p.CurrentPrice.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%d products", len(products)), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
