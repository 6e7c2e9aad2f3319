package dto

// ─── Suppliers ───────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name         string  `json:"name"         validate:"required,min=2,max=255"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	PhoneNumber  *string `json:"phoneNumber"  validate:"omitempty,max=50"`
}

type SupplierResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ContactEmail *string       `json:"contactEmail"`
	PhoneNumber  *string       `json:"phoneNumber"`
	CreatedAt    LocalDateTime `json:"createdAt"`
}

// ─── Products ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	ProductType string  `json:"productType" validate:"required"`
	VarietyName string  `json:"varietyName" validate:"required,max=255"`
	Description *string `json:"description"`
}

type ProductFilter struct {
	Type string `form:"type"`
}

type ProductResponse struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	ProductType     string        `json:"productType"`
	ProductTypeName string        `json:"productTypeName"`
	VarietyName     string        `json:"varietyName"`
	Description     *string       `json:"description"`
	CreatedAt       LocalDateTime `json:"createdAt"`
}

// ─── Lookups ─────────────────────────────────────────────────────────────────

type ProductTypeResponse struct {
	ID          uint    `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type DeliveryStatusResponse struct {
	ID          uint    `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sortOrder"`
}
