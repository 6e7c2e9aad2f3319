package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRequest is bound from the query string of GET /reports.
type ReportRequest struct {
	StartDate string `form:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   validate:"required,datetime=2006-01-02"`
	Detailed  bool   `form:"detailed"`
	Format    string `form:"format"`
}

// ReportQuery is the parsed, typed form of a report request.
type ReportQuery struct {
	StartDate time.Time
	EndDate   time.Time
	Detailed  bool
}

type ReportItemResponse struct {
	SupplierName string          `json:"supplierName"`
	ProductType  string          `json:"productType"`
	Variety      string          `json:"variety"`
	TotalWeight  decimal.Decimal `json:"totalWeight"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

type DetailedReportItemResponse struct {
	SupplierName   string          `json:"supplierName"`
	DeliveryNumber string          `json:"deliveryNumber"`
	DeliveryDate   LocalDateTime   `json:"deliveryDate"`
	ProductName    string          `json:"productName"`
	ProductType    string          `json:"productType"`
	Variety        string          `json:"variety"`
	Weight         decimal.Decimal `json:"weight"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
}

type ReportResponse struct {
	StartDate     LocalDate                    `json:"startDate"`
	EndDate       LocalDate                    `json:"endDate"`
	Detailed      bool                         `json:"detailed"`
	SummaryItems  []ReportItemResponse         `json:"summaryItems"`
	DetailedItems []DetailedReportItemResponse `json:"detailedItems"`
	TotalWeight   decimal.Decimal              `json:"totalWeight"`
	TotalCost     decimal.Decimal              `json:"totalCost"`
}
