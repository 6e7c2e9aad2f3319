package dto

import "github.com/shopspring/decimal"

type CreatePriceRequest struct {
	ProductID     string          `json:"productId"     validate:"required,uuid"`
	Price         decimal.Decimal `json:"price"         validate:"required,gte=0.01"`
	EffectiveFrom *LocalDate      `json:"effectiveFrom" validate:"required"`
	EffectiveTo   *LocalDate      `json:"effectiveTo"`
}

type PriceFilter struct {
	ProductID string `form:"productId" validate:"omitempty,uuid"`
}

type ActivePriceQuery struct {
	Date string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

type PriceResponse struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplierId"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	ProductType   string          `json:"productType"`
	Variety       string          `json:"variety"`
	Price         decimal.Decimal `json:"price"`
	EffectiveFrom LocalDate       `json:"effectiveFrom"`
	EffectiveTo   *LocalDate      `json:"effectiveTo"`
	CreatedAt     LocalDateTime   `json:"createdAt"`
}
