package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DeliveryItemRequest struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Weight    decimal.Decimal `json:"weight"    validate:"required,gt=0"`
}

type CreateDeliveryRequest struct {
	SupplierID   string                `json:"supplierId"   validate:"required,uuid"`
	DeliveryDate *LocalDateTime        `json:"deliveryDate"`
	Items        []DeliveryItemRequest `json:"items"        validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DeliveryItemResponse struct {
	ID          string          `json:"id"`
	LineNumber  int             `json:"lineNumber"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductType string          `json:"productType"`
	Variety     string          `json:"variety"`
	Weight      decimal.Decimal `json:"weight"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type DeliveryResponse struct {
	ID             string                 `json:"id"`
	DeliveryNumber string                 `json:"deliveryNumber"`
	SupplierID     string                 `json:"supplierId"`
	SupplierName   string                 `json:"supplierName"`
	DeliveryDate   LocalDateTime          `json:"deliveryDate"`
	Status         string                 `json:"status"`
	CreatedAt      LocalDateTime          `json:"createdAt"`
	Items          []DeliveryItemResponse `json:"items"`
	TotalWeight    decimal.Decimal        `json:"totalWeight"`
	TotalCost      decimal.Decimal        `json:"totalCost"`
}
