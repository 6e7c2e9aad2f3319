package report

import (
	"encoding/json"
	"fmt"

	"fruitwarehouse/internal/dto"
)

// JSONGenerator passes the report object through as the response body.
type JSONGenerator struct{}

func (JSONGenerator) Format() Format { return FormatJSON }

func (JSONGenerator) Generate(r *dto.ReportResponse) (*Document, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("json report: %w", err)
	}
	return &Document{Format: FormatJSON, ContentType: "application/json; charset=utf-8", Body: body}, nil
}
