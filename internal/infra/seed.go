package infra

import (
	"context"
	"fmt"
	"time"

	"fruitwarehouse/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }

// LookupRows returns the rows every installation needs in the code tables.
func LookupRows() ([]model.ProductType, []model.DeliveryStatus) {
	types := []model.ProductType{
		{Code: model.ProductTypeApple, Name: "Apple", Description: strPtr("Apples of all varieties"), IsActive: true},
		{Code: model.ProductTypePear, Name: "Pear", Description: strPtr("Pears of all varieties"), IsActive: true},
	}
	statuses := []model.DeliveryStatus{
		{Code: model.DeliveryStatusCreated, Name: "Created", Description: strPtr("Delivery registered"), IsActive: true, SortOrder: 1},
		{Code: model.DeliveryStatusInProgress, Name: "In progress", Description: strPtr("Delivery is being unloaded"), IsActive: true, SortOrder: 2},
		{Code: model.DeliveryStatusCompleted, Name: "Completed", Description: strPtr("Delivery accepted"), IsActive: true, SortOrder: 3},
		{Code: model.DeliveryStatusCancelled, Name: "Cancelled", Description: strPtr("Delivery cancelled"), IsActive: true, SortOrder: 4},
	}
	return types, statuses
}

// SeedLookups inserts the code-table rows, leaving existing codes untouched.
func SeedLookups(ctx context.Context, db *gorm.DB) error {
	types, statuses := LookupRows()
	onCode := clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}

	if err := db.WithContext(ctx).Clauses(onCode).Create(&types).Error; err != nil {
		return fmt.Errorf("seed product types: %w", err)
	}
	if err := db.WithContext(ctx).Clauses(onCode).Create(&statuses).Error; err != nil {
		return fmt.Errorf("seed delivery statuses: %w", err)
	}
	return nil
}

type demoProduct struct {
	code    model.ProductTypeCode
	name    string
	variety string
}

var demoProducts = []demoProduct{
	{model.ProductTypeApple, "Apple Gala", "Gala"},
	{model.ProductTypeApple, "Apple Golden Delicious", "Golden Delicious"},
	{model.ProductTypePear, "Pear Conference", "Conference"},
	{model.ProductTypePear, "Pear Williams", "Williams"},
}

var demoSuppliers = []string{"Green Orchards", "Sunny Farm", "Valley Fruit Co"}

// SeedDemo adds sample suppliers and products, each with an open-ended price
// starting on the first day of the current year. Existing rows are reused, so
// running it twice is safe.
func SeedDemo(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := time.Now().UTC().Year()
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

		products := make([]model.Product, 0, len(demoProducts))
		for _, dp := range demoProducts {
			var pt model.ProductType
			if err := tx.Where("code = ?", dp.code).First(&pt).Error; err != nil {
				return fmt.Errorf("product type %s: %w", dp.code, err)
			}
			p := model.Product{Name: dp.name, ProductTypeID: pt.ID, VarietyName: dp.variety}
			if err := tx.Where("name = ?", dp.name).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("product %s: %w", dp.name, err)
			}
			products = append(products, p)
		}

		for si, name := range demoSuppliers {
			s := model.Supplier{Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&s).Error; err != nil {
				return fmt.Errorf("supplier %s: %w", name, err)
			}
			for pi, p := range products {
				var count int64
				if err := tx.Model(&model.SupplierProductPrice{}).
					Where("supplier_id = ? AND product_id = ?", s.ID, p.ID).
					Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					continue
				}
				price := model.SupplierProductPrice{
					SupplierID:    s.ID,
					ProductID:     p.ID,
					Price:         decimal.New(int64(150+25*pi+10*si), -2),
					EffectiveFrom: from,
				}
				if err := tx.Omit("Supplier", "Product").Create(&price).Error; err != nil {
					return fmt.Errorf("price %s/%s: %w", name, p.Name, err)
				}
			}
		}
		log.Info().Int("suppliers", len(demoSuppliers)).Int("products", len(products)).Msg("demo data seeded")
		return nil
	})
}
