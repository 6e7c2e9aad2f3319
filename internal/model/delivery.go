package model

import (
	"time"

	"fruitwarehouse/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Delivery is one inbound shipment from a supplier. Weight and cost totals
// are derived from Items on every read and never stored.
type Delivery struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DeliveryNumber uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	SupplierID     uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryDate   time.Time `gorm:"not null;index"`
	StatusID       uint      `gorm:"not null"`
	CreatedAt      time.Time

	Supplier *Supplier       `gorm:"foreignKey:SupplierID"`
	Status   *DeliveryStatus `gorm:"foreignKey:StatusID"`
	Items    []DeliveryItem  `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

func (Delivery) TableName() string { return "deliveries" }

// BeforeCreate fills the delivery number and date when the caller left them empty.
func (d *Delivery) BeforeCreate(_ *gorm.DB) error {
	if d.DeliveryNumber == uuid.Nil {
		d.DeliveryNumber = uuid.New()
	}
	if d.DeliveryDate.IsZero() {
		d.DeliveryDate = time.Now()
	}
	d.NumberItems()
	return nil
}

// NumberItems gives every unnumbered item its 1-based position in Items.
func (d *Delivery) NumberItems() {
	for i := range d.Items {
		if d.Items[i].LineNumber == 0 {
			d.Items[i].LineNumber = i + 1
		}
	}
}

// Totals sums weight and cost over the delivery items.
func (d *Delivery) Totals() pricing.Totals {
	t := pricing.Totals{Weight: decimal.Zero, Cost: decimal.Zero}
	for _, item := range d.Items {
		t.Add(item.Weight, item.TotalPrice)
	}
	return t
}

// DeliveryItem is one weighed product line. UnitPrice is a snapshot of the
// active supplier price at creation time.
type DeliveryItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DeliveryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNumber int             `gorm:"not null;default:0"`
	Weight     decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (DeliveryItem) TableName() string { return "delivery_items" }

// CalculateTotalPrice recomputes TotalPrice from Weight and UnitPrice.
func (i *DeliveryItem) CalculateTotalPrice() {
	i.TotalPrice = pricing.LineTotal(i.Weight, i.UnitPrice)
}

// BeforeSave keeps TotalPrice in sync on every insert and update.
func (i *DeliveryItem) BeforeSave(_ *gorm.DB) error {
	i.CalculateTotalPrice()
	return nil
}
