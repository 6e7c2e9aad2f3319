package report

import (
	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/pricing"

	"github.com/shopspring/decimal"
)

const (
	displayDate     = "02.01.2006"
	displayDateTime = "02.01.2006 15:04"
	noData          = "No data"
	shortNumberLen  = 8
)

type column struct {
	title   string
	width   float64 // relative width in the PDF layout
	numeric bool
}

type cell struct {
	text   string
	number decimal.Decimal
}

func textCell(s string) cell { return cell{text: s} }

func numberCell(d decimal.Decimal) cell {
	return cell{text: d.StringFixed(pricing.MoneyPlaces), number: d}
}

// table is the format-neutral layout shared by the CSV, PDF and XLSX generators.
type table struct {
	columns []column
	rows    [][]cell
}

var summaryColumns = []column{
	{title: "Supplier", width: 3},
	{title: "Product Type", width: 2},
	{title: "Variety", width: 2.5},
	{title: "Total Weight (kg)", width: 1.8, numeric: true},
	{title: "Total Cost", width: 1.8, numeric: true},
}

var detailedColumns = []column{
	{title: "Supplier", width: 2.6},
	{title: "Delivery Number", width: 1.6},
	{title: "Delivery Date", width: 2},
	{title: "Product Name", width: 2.6},
	{title: "Product Type", width: 1.6},
	{title: "Variety", width: 2},
	{title: "Weight (kg)", width: 1.4, numeric: true},
	{title: "Unit Price", width: 1.4, numeric: true},
	{title: "Total Price", width: 1.4, numeric: true},
}

func buildTable(r *dto.ReportResponse) table {
	if r.Detailed {
		t := table{columns: detailedColumns, rows: make([][]cell, 0, len(r.DetailedItems))}
		for _, it := range r.DetailedItems {
			t.rows = append(t.rows, []cell{
				textCell(it.SupplierName),
				textCell(shortNumber(it.DeliveryNumber)),
				textCell(it.DeliveryDate.Time().UTC().Format(displayDateTime)),
				textCell(it.ProductName),
				textCell(it.ProductType),
				textCell(it.Variety),
				numberCell(it.Weight),
				numberCell(it.UnitPrice),
				numberCell(it.TotalPrice),
			})
		}
		return t
	}
	t := table{columns: summaryColumns, rows: make([][]cell, 0, len(r.SummaryItems))}
	for _, it := range r.SummaryItems {
		t.rows = append(t.rows, []cell{
			textCell(it.SupplierName),
			textCell(it.ProductType),
			textCell(it.Variety),
			numberCell(it.TotalWeight),
			numberCell(it.TotalCost),
		})
	}
	return t
}

func (t table) titles() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.title
	}
	return out
}

func shortNumber(s string) string {
	if len(s) <= shortNumberLen {
		return s
	}
	return s[:shortNumberLen]
}

func periodLabel(r *dto.ReportResponse) string {
	return r.StartDate.Time().Format(displayDate) + " - " + r.EndDate.Time().Format(displayDate)
}

func fixed(d decimal.Decimal) string { return d.StringFixed(pricing.MoneyPlaces) }
