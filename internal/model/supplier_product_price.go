package model

import (
	"time"

	"fruitwarehouse/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierProductPrice is the price per kg a supplier charges for a product
// during an inclusive date range. EffectiveTo == nil means open-ended.
// Ranges of the same (supplier, product) never overlap; the database enforces
// this with an exclusion constraint (see infra.applySchemaPatches).
type SupplierProductPrice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_supplier_product"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_supplier_product"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EffectiveFrom time.Time       `gorm:"type:date;not null"`
	EffectiveTo   *time.Time      `gorm:"type:date"`
	CreatedAt     time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
	Product  *Product  `gorm:"foreignKey:ProductID"`
}

func (SupplierProductPrice) TableName() string { return "supplier_product_prices" }

// Period returns the effective range as a pricing.Period.
func (p *SupplierProductPrice) Period() pricing.Period {
	return pricing.NewPeriod(p.EffectiveFrom, p.EffectiveTo)
}
