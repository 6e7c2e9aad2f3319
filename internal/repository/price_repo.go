package repository

import (
	"context"
	"time"

	"fruitwarehouse/internal/apierror"
	"fruitwarehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceRepository interface {
	// FindActive returns the price whose period contains day, preferring the
	// latest effective_from when several match.
	FindActive(ctx context.Context, supplierID, productID uuid.UUID, day time.Time) (*model.SupplierProductPrice, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.SupplierProductPrice, error)
	ListBySupplierAndProduct(ctx context.Context, supplierID, productID uuid.UUID) ([]model.SupplierProductPrice, error)
	ListActiveBySupplier(ctx context.Context, supplierID uuid.UUID, day time.Time) ([]model.SupplierProductPrice, error)
	FindByIDAndSupplier(ctx context.Context, id, supplierID uuid.UUID) (*model.SupplierProductPrice, error)
	// ListForPair reads every period of (supplier, product) inside tx.
	ListForPair(ctx context.Context, tx *gorm.DB, supplierID, productID uuid.UUID) ([]model.SupplierProductPrice, error)
	Create(ctx context.Context, tx *gorm.DB, p *model.SupplierProductPrice) error
	Delete(ctx context.Context, p *model.SupplierProductPrice) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type priceRepo struct{ db *gorm.DB }

func NewPriceRepository(db *gorm.DB) PriceRepository { return &priceRepo{db: db} }

func (r *priceRepo) DB() *gorm.DB { return r.db }

const activeOnDay = "effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)"

func dateArg(day time.Time) string { return day.Format("2006-01-02") }

func (r *priceRepo) withProduct(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Product.ProductType")
}

func (r *priceRepo) FindActive(ctx context.Context, supplierID, productID uuid.UUID, day time.Time) (*model.SupplierProductPrice, error) {
	var p model.SupplierProductPrice
	d := dateArg(day)
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND product_id = ?", supplierID, productID).
		Where(activeOnDay, d, d).
		Order("effective_from DESC").
		First(&p).Error
	return &p, err
}

func (r *priceRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.SupplierProductPrice, error) {
	var prices []model.SupplierProductPrice
	err := r.withProduct(ctx).
		Where("supplier_id = ?", supplierID).
		Order("product_id").Order("effective_from DESC").
		Find(&prices).Error
	return prices, err
}

func (r *priceRepo) ListBySupplierAndProduct(ctx context.Context, supplierID, productID uuid.UUID) ([]model.SupplierProductPrice, error) {
	var prices []model.SupplierProductPrice
	err := r.withProduct(ctx).
		Where("supplier_id = ? AND product_id = ?", supplierID, productID).
		Order("effective_from DESC").
		Find(&prices).Error
	return prices, err
}

func (r *priceRepo) ListActiveBySupplier(ctx context.Context, supplierID uuid.UUID, day time.Time) ([]model.SupplierProductPrice, error) {
	var prices []model.SupplierProductPrice
	d := dateArg(day)
	err := r.withProduct(ctx).
		Where("supplier_id = ?", supplierID).
		Where(activeOnDay, d, d).
		Order("product_id").Order("effective_from DESC").
		Find(&prices).Error
	return prices, err
}

func (r *priceRepo) FindByIDAndSupplier(ctx context.Context, id, supplierID uuid.UUID) (*model.SupplierProductPrice, error) {
	var p model.SupplierProductPrice
	err := r.db.WithContext(ctx).Where("id = ? AND supplier_id = ?", id, supplierID).First(&p).Error
	return &p, err
}

func (r *priceRepo) ListForPair(ctx context.Context, tx *gorm.DB, supplierID, productID uuid.UUID) ([]model.SupplierProductPrice, error) {
	var prices []model.SupplierProductPrice
	err := tx.WithContext(ctx).
		Where("supplier_id = ? AND product_id = ?", supplierID, productID).
		Order("effective_from").
		Find(&prices).Error
	return prices, err
}

func (r *priceRepo) Create(ctx context.Context, tx *gorm.DB, p *model.SupplierProductPrice) error {
	err := tx.WithContext(ctx).Omit("Supplier", "Product").Create(p).Error
	if isExclusionViolation(err) {
		return apierror.Conflict("Price period %s overlaps with an existing price for this product", p.Period())
	}
	return err
}

func (r *priceRepo) Delete(ctx context.Context, p *model.SupplierProductPrice) error {
	return r.db.WithContext(ctx).Delete(p).Error
}
