package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

var (
	pdfHeaderColor  = [3]int{37, 99, 235}
	pdfHeaderText   = [3]int{255, 255, 255}
	pdfBodyText     = [3]int{50, 50, 50}
	pdfLineColor    = [3]int{200, 200, 200}
	pdfMutedText    = [3]int{128, 128, 128}
	pdfTableWidth   = 190.0
	pdfValueWidth   = 40.0
	pdfBarMaxLength = 60.0
)

// WritePDF writes a one-page A4 report.
func WritePDF(w io.Writer, r Report) error {
	s := r.Summary
	if r.Location == nil {
		r.Location = time.UTC
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(pdfMutedText[0], pdfMutedText[1], pdfMutedText[2])
		pdf.CellFormat(0, 10, tr("Generated "+r.GeneratedAt.In(r.Location).Format(time.DateTime)), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFillColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
	pdf.SetTextColor(pdfHeaderText[0], pdfHeaderText[1], pdfHeaderText[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+r.title()), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(pdfBodyText[0], pdfBodyText[1], pdfBodyText[2])
	pdf.CellFormat(0, 8, tr("  "+r.period()), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Total: "+s.Total.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d expenses, %s unattributed", s.ExpenseCount, s.Unattributed.StringFixed(2))), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(pdfLineColor[0], pdfLineColor[1], pdfLineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pdfTableWidth, pdf.GetY())
		pdf.Ln(2)
		pdf.SetFont("Arial", "", 10)
	}

	if len(s.TopCategories) > 0 {
		section("Top Categories")
		for i, c := range s.TopCategories {
			pdf.CellFormat(pdfTableWidth-pdfValueWidth, 6, tr(fmt.Sprintf("%d. %s", i+1, c.Label)), "", 0, "L", false, 0, "")
			pdf.CellFormat(pdfValueWidth, 6, c.Value.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	section(fmt.Sprintf("Spending by %s", s.Unit))
	peak := decimal.Zero
	for _, p := range s.TimeSeries {
		if p.Value.GreaterThan(peak) {
			peak = p.Value
		}
	}
	labelWidth := pdfTableWidth - pdfValueWidth - pdfBarMaxLength
	for _, p := range s.TimeSeries {
		pdf.CellFormat(labelWidth, 5, tr(p.Label), "", 0, "L", false, 0, "")
		x, y := pdf.GetX(), pdf.GetY()
		if peak.IsPositive() {
			length, _ := p.Value.Div(peak).Mul(decimal.NewFromFloat(pdfBarMaxLength)).Float64()
			if length > 0 {
				pdf.SetFillColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
				pdf.Rect(x, y+1, length, 3, "F")
			}
		}
		pdf.SetX(x + pdfBarMaxLength)
		pdf.CellFormat(pdfValueWidth, 5, p.Value.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF report: %w", err)
	}
	return nil
}
