package repository

import (
	"context"

	"fruitwarehouse/internal/model"

	"gorm.io/gorm"
)

// LookupRepository reads the seeded code tables.
type LookupRepository interface {
	FindProductTypeByCode(ctx context.Context, code model.ProductTypeCode) (*model.ProductType, error)
	ListProductTypes(ctx context.Context) ([]model.ProductType, error)
	FindDeliveryStatusByCode(ctx context.Context, code model.DeliveryStatusCode) (*model.DeliveryStatus, error)
	ListDeliveryStatuses(ctx context.Context) ([]model.DeliveryStatus, error)
}

type lookupRepo struct{ db *gorm.DB }

func NewLookupRepository(db *gorm.DB) LookupRepository { return &lookupRepo{db: db} }

func (r *lookupRepo) FindProductTypeByCode(ctx context.Context, code model.ProductTypeCode) (*model.ProductType, error) {
	var pt model.ProductType
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&pt).Error
	return &pt, err
}

func (r *lookupRepo) ListProductTypes(ctx context.Context) ([]model.ProductType, error) {
	var types []model.ProductType
	err := r.db.WithContext(ctx).Where("is_active = true").Order("name").Find(&types).Error
	return types, err
}

func (r *lookupRepo) FindDeliveryStatusByCode(ctx context.Context, code model.DeliveryStatusCode) (*model.DeliveryStatus, error) {
	var st model.DeliveryStatus
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&st).Error
	return &st, err
}

func (r *lookupRepo) ListDeliveryStatuses(ctx context.Context) ([]model.DeliveryStatus, error) {
	var statuses []model.DeliveryStatus
	err := r.db.WithContext(ctx).Where("is_active = true").Order("sort_order").Find(&statuses).Error
	return statuses, err
}
