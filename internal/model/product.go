package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is one fruit variety, e.g. a Golden Delicious apple.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	ProductTypeID uint      `gorm:"not null;index"`
	VarietyName   string    `gorm:"not null"`
	Description   *string
	CreatedAt     time.Time

	ProductType *ProductType `gorm:"foreignKey:ProductTypeID"`
}

func (Product) TableName() string { return "products" }

// TypeName returns the display name of the product type, or "" when not loaded.
func (p *Product) TypeName() string {
	if p.ProductType == nil {
		return ""
	}
	return p.ProductType.Name
}
