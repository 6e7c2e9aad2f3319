package service

import (
	"context"
	"fmt"
	"time"

	"fruitwarehouse/internal/apierror"
	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/pricing"
	"fruitwarehouse/internal/report"
	"fruitwarehouse/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ReportService interface {
	// Build validates the request and aggregates deliveries in the period.
	Build(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error)
	// Generate builds the report and renders it in the requested format.
	Generate(ctx context.Context, req dto.ReportRequest) (*report.Document, error)
}

type reportService struct {
	repo     repository.ReportRepository
	registry *report.Registry
	now      Clock
}

func NewReportService(repo repository.ReportRepository, registry *report.Registry) ReportService {
	return &reportService{repo: repo, registry: registry, now: systemClock}
}

// ParseReportQuery checks the dates of a report request before anything is queried:
// start ≤ end, start not in the future and a period of at most one year.
func ParseReportQuery(req dto.ReportRequest, today time.Time) (dto.ReportQuery, error) {
	start, err := time.Parse(dto.DateLayout, req.StartDate)
	if err != nil {
		return dto.ReportQuery{}, apierror.Validation("Start date must be a date in YYYY-MM-DD format")
	}
	end, err := time.Parse(dto.DateLayout, req.EndDate)
	if err != nil {
		return dto.ReportQuery{}, apierror.Validation("End date must be a date in YYYY-MM-DD format")
	}
	if start.After(end) {
		return dto.ReportQuery{}, apierror.Validation("Start date cannot be after end date")
	}
	if start.After(pricing.Day(today)) {
		return dto.ReportQuery{}, apierror.Validation("Start date cannot be in the future")
	}
	if end.After(start.AddDate(1, 0, 0)) {
		return dto.ReportQuery{}, apierror.Validation("Report period cannot exceed 1 year")
	}
	return dto.ReportQuery{StartDate: start, EndDate: end, Detailed: req.Detailed}, nil
}

func (s *reportService) Build(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error) {
	q, err := ParseReportQuery(req, s.now())
	if err != nil {
		return nil, err
	}
	return s.build(ctx, q)
}

func (s *reportService) build(ctx context.Context, q dto.ReportQuery) (*dto.ReportResponse, error) {
	from := q.StartDate
	until := q.EndDate.AddDate(0, 0, 1)

	resp := &dto.ReportResponse{
		StartDate:     dto.NewLocalDate(q.StartDate),
		EndDate:       dto.NewLocalDate(q.EndDate),
		Detailed:      q.Detailed,
		SummaryItems:  []dto.ReportItemResponse{},
		DetailedItems: []dto.DetailedReportItemResponse{},
	}
	totals := pricing.Totals{Weight: decimal.Zero, Cost: decimal.Zero}

	if q.Detailed {
		rows, err := s.repo.Detailed(ctx, from, until)
		if err != nil {
			return nil, fmt.Errorf("detailed report: %w", err)
		}
		for _, row := range rows {
			resp.DetailedItems = append(resp.DetailedItems, dto.DetailedReportItemResponse{
				SupplierName:   row.SupplierName,
				DeliveryNumber: row.DeliveryNumber.String(),
				DeliveryDate:   dto.NewLocalDateTime(row.DeliveryDate),
				ProductName:    row.ProductName,
				ProductType:    row.ProductType,
				Variety:        row.Variety,
				Weight:         row.Weight,
				UnitPrice:      row.UnitPrice,
				TotalPrice:     row.TotalPrice,
			})
			totals.Add(row.Weight, row.TotalPrice)
		}
	} else {
		rows, err := s.repo.Summary(ctx, from, until)
		if err != nil {
			return nil, fmt.Errorf("summary report: %w", err)
		}
		for _, row := range rows {
			resp.SummaryItems = append(resp.SummaryItems, dto.ReportItemResponse{
				SupplierName: row.SupplierName,
				ProductType:  row.ProductType,
				Variety:      row.Variety,
				TotalWeight:  row.TotalWeight,
				TotalCost:    row.TotalCost,
			})
			totals.Add(row.TotalWeight, row.TotalCost)
		}
	}

	resp.TotalWeight = totals.Weight
	resp.TotalCost = totals.Cost
	return resp, nil
}

func (s *reportService) Generate(ctx context.Context, req dto.ReportRequest) (*report.Document, error) {
	q, err := ParseReportQuery(req, s.now())
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(req.Format)
	if err != nil {
		return nil, apierror.Validation("Unsupported report format %q", req.Format)
	}
	// A known format without a generator is a wiring error and surfaces as a 500.
	gen, err := s.registry.Get(format)
	if err != nil {
		return nil, err
	}

	resp, err := s.build(ctx, q)
	if err != nil {
		return nil, err
	}
	doc, err := gen.Generate(resp)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("start", req.StartDate).
		Str("end", req.EndDate).
		Bool("detailed", q.Detailed).
		Str("format", string(format)).
		Int("bytes", len(doc.Body)).
		Msg("report generated")
	return doc, nil
}
