package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fruitwarehouse/internal/apierror"
	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/model"
	"fruitwarehouse/internal/pricing"
	"fruitwarehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var minPrice = decimal.New(1, -pricing.MoneyPlaces)

type PriceService interface {
	AddPrice(ctx context.Context, supplierID uuid.UUID, req dto.CreatePriceRequest) (*dto.PriceResponse, error)
	ListPrices(ctx context.Context, supplierID uuid.UUID, filter dto.PriceFilter) ([]dto.PriceResponse, error)
	// ListActivePrices returns the prices in force on day, or today when day is nil.
	ListActivePrices(ctx context.Context, supplierID uuid.UUID, day *time.Time) ([]dto.PriceResponse, error)
	DeletePrice(ctx context.Context, supplierID, priceID uuid.UUID) error
}

type priceService struct {
	repo      repository.PriceRepository
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	now       Clock
}

func NewPriceService(
	repo repository.PriceRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
) PriceService {
	return &priceService{repo: repo, suppliers: suppliers, products: products, now: systemClock}
}

func (s *priceService) requireSupplier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return notFound(err, "Supplier with id %s not found", id)
	}
	return nil
}

func (s *priceService) AddPrice(ctx context.Context, supplierID uuid.UUID, req dto.CreatePriceRequest) (*dto.PriceResponse, error) {
	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("Invalid product id %q", req.ProductID)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, notFound(err, "Product with id %s not found", productID)
	}
	if req.Price.LessThan(minPrice) {
		return nil, apierror.Validation("Price must be at least %s", minPrice.StringFixed(pricing.MoneyPlaces))
	}
	if req.EffectiveFrom == nil {
		return nil, apierror.Validation("Effective from date is required")
	}

	var to *time.Time
	if req.EffectiveTo != nil {
		t := req.EffectiveTo.Time()
		to = &t
	}
	period := pricing.NewPeriod(req.EffectiveFrom.Time(), to)
	if err := period.Validate(); errors.Is(err, pricing.ErrInvertedPeriod) {
		return nil, apierror.Validation("Effective from date cannot be after effective to date")
	}

	price := &model.SupplierProductPrice{
		SupplierID:    supplierID,
		ProductID:     productID,
		Price:         req.Price.Round(pricing.MoneyPlaces),
		EffectiveFrom: period.From,
		EffectiveTo:   period.To,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existing, err := s.repo.ListForPair(ctx, tx, supplierID, productID)
		if err != nil {
			return err
		}
		for i := range existing {
			other := existing[i].Period()
			if other.Overlaps(period) {
				return apierror.Validation("Price period overlaps with existing price for period %s", other)
			}
		}
		return s.repo.Create(ctx, tx, price)
	})
	if err != nil {
		if _, ok := apierror.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("add price: %w", err)
	}
	price.Product = product

	log.Info().
		Str("price_id", price.ID.String()).
		Str("supplier_id", supplierID.String()).
		Str("product_id", productID.String()).
		Str("period", period.String()).
		Str("price", price.Price.StringFixed(pricing.MoneyPlaces)).
		Msg("price added")

	resp := priceToResponse(price)
	return &resp, nil
}

func (s *priceService) ListPrices(ctx context.Context, supplierID uuid.UUID, filter dto.PriceFilter) ([]dto.PriceResponse, error) {
	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return nil, err
	}

	var (
		prices []model.SupplierProductPrice
		err    error
	)
	if filter.ProductID != "" {
		productID, perr := uuid.Parse(filter.ProductID)
		if perr != nil {
			return nil, apierror.Validation("Invalid product id %q", filter.ProductID)
		}
		if _, perr := s.products.FindByID(ctx, productID); perr != nil {
			return nil, notFound(perr, "Product with id %s not found", productID)
		}
		prices, err = s.repo.ListBySupplierAndProduct(ctx, supplierID, productID)
	} else {
		prices, err = s.repo.ListBySupplier(ctx, supplierID)
	}
	if err != nil {
		return nil, err
	}
	return pricesToResponse(prices), nil
}

func (s *priceService) ListActivePrices(ctx context.Context, supplierID uuid.UUID, day *time.Time) ([]dto.PriceResponse, error) {
	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	on := s.now()
	if day != nil {
		on = *day
	}
	prices, err := s.repo.ListActiveBySupplier(ctx, supplierID, pricing.Day(on))
	if err != nil {
		return nil, err
	}
	return pricesToResponse(prices), nil
}

func (s *priceService) DeletePrice(ctx context.Context, supplierID, priceID uuid.UUID) error {
	price, err := s.repo.FindByIDAndSupplier(ctx, priceID, supplierID)
	if err != nil {
		return notFound(err, "Price not found or doesn't belong to this supplier")
	}
	if err := s.repo.Delete(ctx, price); err != nil {
		return fmt.Errorf("delete price: %w", err)
	}
	log.Info().
		Str("price_id", priceID.String()).
		Str("supplier_id", supplierID.String()).
		Msg("price deleted")
	return nil
}

func pricesToResponse(prices []model.SupplierProductPrice) []dto.PriceResponse {
	out := make([]dto.PriceResponse, 0, len(prices))
	for i := range prices {
		out = append(out, priceToResponse(&prices[i]))
	}
	return out
}
