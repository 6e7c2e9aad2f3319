package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryRow is one (supplier, product type, variety) group of a report window.
type SummaryRow struct {
	SupplierName string
	ProductType  string
	Variety      string
	TotalWeight  decimal.Decimal
	TotalCost    decimal.Decimal
}

// DetailedRow is a single delivery item of a report window.
type DetailedRow struct {
	SupplierName   string
	DeliveryNumber uuid.UUID
	DeliveryDate   time.Time
	ProductName    string
	ProductType    string
	Variety        string
	Weight         decimal.Decimal
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
}

// ReportRepository aggregates delivery items over a half-open time window [from, until).
type ReportRepository interface {
	Summary(ctx context.Context, from, until time.Time) ([]SummaryRow, error)
	Detailed(ctx context.Context, from, until time.Time) ([]DetailedRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

const reportJoins = `
FROM delivery_items di
JOIN deliveries d     ON d.id = di.delivery_id
JOIN suppliers s      ON s.id = d.supplier_id
JOIN products p       ON p.id = di.product_id
JOIN product_types pt ON pt.id = p.product_type_id
WHERE d.delivery_date >= ? AND d.delivery_date < ?`

func (r *reportRepo) Summary(ctx context.Context, from, until time.Time) ([]SummaryRow, error) {
	var rows []SummaryRow
	err := r.db.WithContext(ctx).Raw(`
SELECT s.name           AS supplier_name,
       pt.name          AS product_type,
       p.variety_name   AS variety,
       SUM(di.weight)      AS total_weight,
       SUM(di.total_price) AS total_cost`+reportJoins+`
GROUP BY s.name, pt.name, p.variety_name
ORDER BY s.name, pt.name, p.variety_name`, from, until).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Detailed(ctx context.Context, from, until time.Time) ([]DetailedRow, error) {
	var rows []DetailedRow
	err := r.db.WithContext(ctx).Raw(`
SELECT s.name            AS supplier_name,
       d.delivery_number AS delivery_number,
       d.delivery_date   AS delivery_date,
       p.name            AS product_name,
       pt.name           AS product_type,
       p.variety_name    AS variety,
       di.weight         AS weight,
       di.unit_price     AS unit_price,
       di.total_price    AS total_price`+reportJoins+`
ORDER BY d.delivery_date DESC, s.name, pt.name, p.variety_name`, from, until).Scan(&rows).Error
	return rows, err
}
