package repository

import (
	"context"

	"fruitwarehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryRepository interface {
	// Create inserts the delivery and its items inside tx.
	Create(ctx context.Context, tx *gorm.DB, d *model.Delivery) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Delivery, error)
	List(ctx context.Context) ([]model.Delivery, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.Delivery, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type deliveryRepo struct{ db *gorm.DB }

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository { return &deliveryRepo{db: db} }

func (r *deliveryRepo) DB() *gorm.DB { return r.db }

func (r *deliveryRepo) Create(ctx context.Context, tx *gorm.DB, d *model.Delivery) error {
	return tx.WithContext(ctx).Omit("Supplier", "Status").Create(d).Error
}

func (r *deliveryRepo) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Status").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("delivery_items.line_number") }).
		Preload("Items.Product.ProductType")
}

func (r *deliveryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	var d model.Delivery
	err := r.withDetails(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *deliveryRepo) List(ctx context.Context) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.withDetails(ctx).Order("delivery_date DESC").Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.withDetails(ctx).
		Where("supplier_id = ?", supplierID).
		Order("delivery_date DESC").
		Find(&deliveries).Error
	return deliveries, err
}
