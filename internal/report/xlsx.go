package report

import (
	"fmt"
	"strconv"

	"fruitwarehouse/internal/dto"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

// XLSXGenerator writes a single-sheet workbook.
type XLSXGenerator struct{}

func (XLSXGenerator) Format() Format { return FormatXLSX }

// sheetWriter keeps the first excelize error so the layout code reads
// top to bottom.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) style(s *excelize.Style) int {
	if w.err != nil {
		return 0
	}
	id, err := w.f.NewStyle(s)
	w.err = err
	return id
}

func (w *sheetWriter) set(ref string, v any) {
	if w.err == nil {
		w.err = w.f.SetCellValue(xlsxSheet, ref, v)
	}
}

func (w *sheetWriter) styleRange(from, to string, id int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(xlsxSheet, from, to, id)
	}
}

func (w *sheetWriter) width(col string, width float64) {
	if w.err == nil {
		w.err = w.f.SetColWidth(xlsxSheet, col, col, width)
	}
}

func (w *sheetWriter) column(i int) string {
	if w.err != nil {
		return "A"
	}
	name, err := excelize.ColumnNumberToName(i + 1)
	w.err = err
	return name
}

func (XLSXGenerator) Generate(r *dto.ReportResponse) (*Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("xlsx report: %w", err)
	}
	w := &sheetWriter{f: f}

	boldStyle := w.style(&excelize.Style{Font: &excelize.Font{Bold: true}})
	headerStyle := w.style(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	// NumFmt 2 is the built-in "0.00".
	numberStyle := w.style(&excelize.Style{NumFmt: 2})
	totalStyle := w.style(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 2})

	w.set("A1", "Report period")
	w.set("B1", periodLabel(r))
	w.set("A2", "Detailed")
	w.set("B2", strconv.FormatBool(r.Detailed))
	w.styleRange("A1", "A2", boldStyle)

	t := buildTable(r)
	const headerRow = 4
	for i, col := range t.columns {
		name := w.column(i)
		cell := fmt.Sprintf("%s%d", name, headerRow)
		w.set(cell, col.title)
		w.styleRange(cell, cell, headerStyle)
		w.width(name, 6*col.width+4)
	}

	row := headerRow + 1
	if len(t.rows) == 0 {
		w.set(fmt.Sprintf("A%d", row), noData)
		row++
	}
	for _, cells := range t.rows {
		for i, c := range cells {
			ref := fmt.Sprintf("%s%d", w.column(i), row)
			if t.columns[i].numeric {
				v, _ := c.number.Float64()
				w.set(ref, v)
				w.styleRange(ref, ref, numberStyle)
				continue
			}
			w.set(ref, c.text)
		}
		row++
	}

	row++
	weight, _ := r.TotalWeight.Float64()
	cost, _ := r.TotalCost.Float64()
	w.set(fmt.Sprintf("A%d", row), "Total weight")
	w.set(fmt.Sprintf("B%d", row), weight)
	w.set(fmt.Sprintf("A%d", row+1), "Total cost")
	w.set(fmt.Sprintf("B%d", row+1), cost)
	w.styleRange(fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row+1), totalStyle)

	if w.err != nil {
		return nil, fmt.Errorf("xlsx report: %w", w.err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx report: %w", err)
	}
	return &Document{
		Format:      FormatXLSX,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		FileName:    FileName(r, "xlsx"),
		Body:        buf.Bytes(),
	}, nil
}
