// Package report renders a delivery report into downloadable documents.
// Each output format has one Generator; a Registry maps formats to generators.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fruitwarehouse/internal/dto"
)

// Format names an output format. Values match the `format` query parameter.
type Format string

const (
	FormatJSON Format = "JSON"
	FormatCSV  Format = "CSV"
	FormatPDF  Format = "PDF"
	FormatXLSX Format = "XLSX"
)

var knownFormats = []Format{FormatJSON, FormatCSV, FormatPDF, FormatXLSX}

var (
	// ErrUnknownFormat is returned by ParseFormat for names outside the known set.
	ErrUnknownFormat = errors.New("unknown report format")
	// ErrNoGenerator means a known format has no generator registered, which is
	// a wiring mistake rather than bad input.
	ErrNoGenerator = errors.New("no generator registered for report format")
)

// ParseFormat matches s case-insensitively. An empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return FormatJSON, nil
	}
	for _, f := range knownFormats {
		if Format(s) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Document is a rendered report. An empty FileName means the body is served inline.
type Document struct {
	Format      Format
	ContentType string
	FileName    string
	Body        []byte
}

// Generator renders a report in one format.
type Generator interface {
	Format() Format
	Generate(r *dto.ReportResponse) (*Document, error)
}

// Registry maps each format to its generator.
type Registry struct {
	generators map[Format]Generator
}

func NewRegistry(gens ...Generator) *Registry {
	r := &Registry{generators: make(map[Format]Generator, len(gens))}
	for _, g := range gens {
		r.generators[g.Format()] = g
	}
	return r
}

// DefaultRegistry registers every built-in generator.
func DefaultRegistry() *Registry {
	return NewRegistry(JSONGenerator{}, CSVGenerator{}, PDFGenerator{}, XLSXGenerator{})
}

func (r *Registry) Get(f Format) (Generator, error) {
	g, ok := r.generators[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoGenerator, f)
	}
	return g, nil
}

// Formats lists the registered formats in name order.
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.generators))
	for f := range r.generators {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FileName is the attachment name of a report, e.g. delivery_report_2024-01-01_2024-01-31.csv.
func FileName(r *dto.ReportResponse, ext string) string {
	return fmt.Sprintf("delivery_report_%s_%s.%s", r.StartDate, r.EndDate, ext)
}
