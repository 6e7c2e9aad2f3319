package repository

import (
	"context"

	"fruitwarehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// List returns every product, or only those of the given type when code is non-empty.
	List(ctx context.Context, code model.ProductTypeCode) ([]model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	if err := r.db.WithContext(ctx).Omit("ProductType").Create(p).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("ProductType").First(p, "id = ?", p.ID).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("ProductType").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, code model.ProductTypeCode) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Preload("ProductType")
	if code != "" {
		q = q.Joins("JOIN product_types pt ON pt.id = products.product_type_id").
			Where("pt.code = ?", code)
	}
	err := q.Order("products.name").Order("products.variety_name").Find(&products).Error
	return products, err
}
