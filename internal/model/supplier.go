package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier delivers fruit and owns a price list.
type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"uniqueIndex;not null"`
	ContactEmail *string
	PhoneNumber  *string
	CreatedAt    time.Time
}

func (Supplier) TableName() string { return "suppliers" }
