package infra

// Monthly treasury report rendered with go-pdf/fpdf: a one-page A4 sheet
// with the month's bar revenue broken down by payment method.
// The output file is saved to storagePath/tesouraria_{YYYY-MM}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateTreasuryPDF writes the monthly treasury report and returns the
// path of the generated file. storagePath is created if needed.
func GenerateTreasuryPDF(summary *dto.TreasurySummaryResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("tesouraria_%s.pdf", summary.Month)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Mouros Moto Hub", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, "Relatório mensal de tesouraria — "+summary.Month, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Gerado em "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(6)

	col1 := contentW * 0.6
	col2 := contentW * 0.4

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Método de pagamento", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Total", "B", 1, "R", false, 0, "")

	// Stable row order regardless of map iteration
	methods := make([]string, 0, len(summary.ByMethod))
	for m := range summary.ByMethod {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range methods {
		pdf.CellFormat(col1, 7, m, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, "€ "+summary.ByMethod[m].StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 8, "€ "+summary.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Vendas registadas no mês: %d", summary.SalesCount), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
