package model

import "strings"

// ProductTypeCode is the stable code of a ProductType row.
type ProductTypeCode string

const (
	ProductTypeApple ProductTypeCode = "APPLE"
	ProductTypePear  ProductTypeCode = "PEAR"
)

// ProductTypeCodes lists every known product type code.
var ProductTypeCodes = []ProductTypeCode{ProductTypeApple, ProductTypePear}

// ParseProductTypeCode matches s case-insensitively against the known codes.
func ParseProductTypeCode(s string) (ProductTypeCode, bool) {
	code := ProductTypeCode(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range ProductTypeCodes {
		if c == code {
			return c, true
		}
	}
	return "", false
}

// ProductType is a lookup row; rows are seeded, never created by business logic.
type ProductType struct {
	ID          uint            `gorm:"primaryKey"`
	Code        ProductTypeCode `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Description *string
	IsActive    bool `gorm:"not null;default:true"`
}

func (ProductType) TableName() string { return "product_types" }

// DeliveryStatusCode is the stable code of a DeliveryStatus row.
type DeliveryStatusCode string

const (
	DeliveryStatusCreated    DeliveryStatusCode = "CREATED"
	DeliveryStatusInProgress DeliveryStatusCode = "IN_PROGRESS"
	DeliveryStatusCompleted  DeliveryStatusCode = "COMPLETED"
	DeliveryStatusCancelled  DeliveryStatusCode = "CANCELLED"
)

// DeliveryStatusCodes lists every known delivery status code in lifecycle order.
var DeliveryStatusCodes = []DeliveryStatusCode{
	DeliveryStatusCreated,
	DeliveryStatusInProgress,
	DeliveryStatusCompleted,
	DeliveryStatusCancelled,
}

// DeliveryStatus is a lookup row keyed by code.
type DeliveryStatus struct {
	ID          uint               `gorm:"primaryKey"`
	Code        DeliveryStatusCode `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name        string             `gorm:"type:varchar(100);not null"`
	Description *string
	IsActive    bool `gorm:"not null;default:true"`
	SortOrder   int
}

func (DeliveryStatus) TableName() string { return "delivery_statuses" }
