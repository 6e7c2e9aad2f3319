package report

// pdf.go renders the report on A4 paper with go-pdf/fpdf:
//   - title and period
//   - item table whose header repeats on every page
//   - "No data for the selected period" when there are no rows
//   - bold totals
//   - "Page N of M" footer
// Summary reports are portrait, detailed reports landscape.

import (
	"bytes"
	"fmt"
	"strconv"

	"fruitwarehouse/internal/dto"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 6.0
	pdfFont      = "Helvetica"
)

// PDFGenerator renders A4 reports.
type PDFGenerator struct{}

func (PDFGenerator) Format() Format { return FormatPDF }

func (PDFGenerator) Generate(r *dto.ReportResponse) (*Document, error) {
	orientation := "P"
	if r.Detailed {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin
	bottom := pageH - 2*pdfMargin

	// ── Title ────────────────────────────────────────────────────────────────
	title := "Delivery Summary Report"
	if r.Detailed {
		title = "Detailed Delivery Report"
	}
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(contentW, 9, title, "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(contentW, 6, "Period: "+periodLabel(r), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	t := buildTable(r)
	widths := columnWidths(t.columns, contentW)

	header := func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(217, 225, 242)
		for i, col := range t.columns {
			pdf.CellFormat(widths[i], pdfRowHeight+1, tr(col.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 8)
	}
	header()

	// ── Rows ─────────────────────────────────────────────────────────────────
	if len(t.rows) == 0 {
		pdf.SetFont(pdfFont, "I", 9)
		pdf.CellFormat(contentW, pdfRowHeight+2, "No data for the selected period", "1", 1, "C", false, 0, "")
	}
	for _, row := range t.rows {
		if pdf.GetY()+pdfRowHeight > bottom {
			pdf.AddPage()
			header()
		}
		for i, c := range row {
			align := "L"
			if t.columns[i].numeric {
				align = "R"
			}
			pdf.CellFormat(widths[i], pdfRowHeight, fit(pdf, tr, c.text, widths[i]-2), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	if pdf.GetY()+3*pdfRowHeight > bottom {
		pdf.AddPage()
	}
	pdf.Ln(3)
	pdf.SetFont(pdfFont, "B", 10)
	labelW := contentW * 0.75
	pdf.CellFormat(labelW, pdfRowHeight, "Total weight (kg):", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW-labelW, pdfRowHeight, fixed(r.TotalWeight), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, pdfRowHeight, "Total cost:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW-labelW, pdfRowHeight, fixed(r.TotalCost), "", 1, "R", false, 0, "")
	pdf.SetFont(pdfFont, "", 8)
	pdf.CellFormat(contentW, 5, "Rows: "+strconv.Itoa(len(t.rows)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf report: %w", err)
	}
	return &Document{
		Format:      FormatPDF,
		ContentType: "application/pdf",
		FileName:    FileName(r, "pdf"),
		Body:        buf.Bytes(),
	}, nil
}

func columnWidths(cols []column, total float64) []float64 {
	var sum float64
	for _, c := range cols {
		sum += c.width
	}
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = total * c.width / sum
	}
	return out
}

// fit shortens the UTF-8 text s with a trailing "..." until its translated
// form is no wider than w, and returns the translated text.
func fit(pdf *fpdf.Fpdf, tr func(string) string, s string, w float64) string {
	if out := tr(s); pdf.GetStringWidth(out) <= w {
		return out
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(tr(string(r)+"...")) > w {
		r = r[:len(r)-1]
	}
	return tr(string(r) + "...")
}
