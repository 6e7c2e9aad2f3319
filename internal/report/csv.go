package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"fruitwarehouse/internal/dto"
)

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVGenerator writes the period header, the table (or a "No data" row) and totals.
type CSVGenerator struct{}

func (CSVGenerator) Format() Format { return FormatCSV }

func (CSVGenerator) Generate(r *dto.ReportResponse) (*Document, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	t := buildTable(r)

	records := [][]string{
		{"Report period", periodLabel(r)},
		{"Detailed", strconv.FormatBool(r.Detailed)},
		{},
		t.titles(),
	}
	if len(t.rows) == 0 {
		records = append(records, []string{noData})
	}
	for _, row := range t.rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.text
		}
		records = append(records, rec)
	}
	records = append(records,
		[]string{},
		[]string{"Total weight", fixed(r.TotalWeight)},
		[]string{"Total cost", fixed(r.TotalCost)},
	)

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv report: %w", err)
	}
	return &Document{
		Format:      FormatCSV,
		ContentType: "text/csv; charset=UTF-8",
		FileName:    FileName(r, "csv"),
		Body:        buf.Bytes(),
	}, nil
}
