package infra

import (
	"context"
	"fmt"
	"time"

	"fruitwarehouse/internal/config"
	"fruitwarehouse/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and sizes the pool.
// It does not touch the schema; see RunMigrations.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if !cfg.IsProduction() && cfg.LogLevel == "debug" {
		logLevel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// RunMigrations creates / updates all tables with AutoMigrate, then applies the
// idempotent SQL patches GORM cannot express, then seeds the lookup tables.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	// btree_gist must exist before the exclusion constraint below.
	if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("create extension btree_gist: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&model.ProductType{},
		&model.DeliveryStatus{},
		&model.Supplier{},
		&model.Product{},
		&model.SupplierProductPrice{},
		&model.Delivery{},
		&model.DeliveryItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(ctx, db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return SeedLookups(ctx, db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// express (check and exclusion constraints). Each statement is guarded by an
// existence check so re-running on an already-patched DB is a no-op.
func applySchemaPatches(ctx context.Context, db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"price period check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_supplier_product_prices_period') THEN
    ALTER TABLE supplier_product_prices
      ADD CONSTRAINT chk_supplier_product_prices_period
      CHECK (effective_to IS NULL OR effective_from <= effective_to);
  END IF;
END $$`},
		{"price minimum check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_supplier_product_prices_price') THEN
    ALTER TABLE supplier_product_prices
      ADD CONSTRAINT chk_supplier_product_prices_price CHECK (price >= 0.01);
  END IF;
END $$`},
		// No two periods of the same (supplier, product) may share a day. Closes the
		// race between the service-level overlap check and the insert.
		{"price period exclusion", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'excl_supplier_product_prices_period') THEN
    ALTER TABLE supplier_product_prices
      ADD CONSTRAINT excl_supplier_product_prices_period
      EXCLUDE USING gist (
        supplier_id WITH =,
        product_id  WITH =,
        daterange(effective_from, effective_to, '[]') WITH &&
      );
  END IF;
END $$`},
		{"delivery item weight check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_delivery_items_weight') THEN
    ALTER TABLE delivery_items
      ADD CONSTRAINT chk_delivery_items_weight CHECK (weight > 0);
  END IF;
END $$`},
		{"report window index", `
CREATE INDEX IF NOT EXISTS idx_deliveries_date_supplier
    ON deliveries (delivery_date, supplier_id)`},
	}
	for _, p := range patches {
		if err := db.WithContext(ctx).Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
