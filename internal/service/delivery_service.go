package service

import (
	"context"
	"fmt"

	"fruitwarehouse/internal/apierror"
	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/model"
	"fruitwarehouse/internal/pricing"
	"fruitwarehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type DeliveryService interface {
	Create(ctx context.Context, req dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DeliveryResponse, error)
	List(ctx context.Context) ([]dto.DeliveryResponse, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]dto.DeliveryResponse, error)
}

type deliveryService struct {
	repo      repository.DeliveryRepository
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	prices    repository.PriceRepository
	lookups   repository.LookupRepository
	now       Clock
}

func NewDeliveryService(
	repo repository.DeliveryRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	prices repository.PriceRepository,
	lookups repository.LookupRepository,
) DeliveryService {
	return &deliveryService{
		repo:      repo,
		suppliers: suppliers,
		products:  products,
		prices:    prices,
		lookups:   lookups,
		now:       systemClock,
	}
}

// ── Create ────────────────────────────────────────────────────────────────────
//   1. Resolve supplier and the CREATED status
//   2. For each item: resolve product, find the price active on the delivery day, calc line total
//   3. BEGIN TX: insert delivery + items
//   4. COMMIT; totals are derived from the items, never stored

func (s *deliveryService) Create(ctx context.Context, req dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if len(req.Items) == 0 {
		return nil, apierror.Validation("Delivery must contain at least one item")
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, apierror.Validation("Invalid supplier id %q", req.SupplierID)
	}
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, notFound(err, "Supplier with id %s not found", supplierID)
	}

	deliveryDate := s.now()
	if req.DeliveryDate != nil {
		deliveryDate = req.DeliveryDate.Time()
	}
	day := pricing.Day(deliveryDate)

	status, err := s.lookups.FindDeliveryStatusByCode(ctx, model.DeliveryStatusCreated)
	if err != nil {
		return nil, notFound(err, "Delivery status %s not found", model.DeliveryStatusCreated)
	}

	items := make([]model.DeliveryItem, 0, len(req.Items))
	products := make([]*model.Product, 0, len(req.Items))
	for _, in := range req.Items {
		productID, err := uuid.Parse(in.ProductID)
		if err != nil {
			return nil, apierror.Validation("Invalid product id %q", in.ProductID)
		}
		if !in.Weight.IsPositive() {
			return nil, apierror.Validation("Weight must be greater than 0")
		}
		if !pricing.HasWeightScale(in.Weight) {
			return nil, apierror.Validation("Weight must have at most %d decimal places", pricing.WeightPlaces)
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, notFound(err, "Product with id %s not found", productID)
		}
		price, err := s.prices.FindActive(ctx, supplierID, productID, day)
		if err != nil {
			return nil, notFoundAsValidation(err,
				"No active price found for supplier %s, product %s on date %s. "+
					"Please set price in supplier price list before creating delivery.",
				supplierID, productID, day.Format(dto.DateLayout))
		}

		item := model.DeliveryItem{
			ProductID:  productID,
			LineNumber: len(items) + 1,
			Weight:     in.Weight,
			UnitPrice:  price.Price,
		}
		item.CalculateTotalPrice()
		items = append(items, item)
		products = append(products, product)
	}

	delivery := &model.Delivery{
		DeliveryNumber: uuid.New(),
		SupplierID:     supplierID,
		DeliveryDate:   deliveryDate,
		StatusID:       status.ID,
		Items:          items,
	}
	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, delivery)
	}); err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	delivery.Supplier = supplier
	delivery.Status = status
	for i := range delivery.Items {
		delivery.Items[i].Product = products[i]
	}

	totals := delivery.Totals()
	log.Info().
		Str("delivery_id", delivery.ID.String()).
		Str("supplier_id", supplierID.String()).
		Int("items", len(delivery.Items)).
		Str("total_weight", totals.Weight.String()).
		Str("total_cost", totals.Cost.String()).
		Msg("delivery created")

	resp := deliveryToResponse(delivery)
	return &resp, nil
}

func (s *deliveryService) GetByID(ctx context.Context, id uuid.UUID) (*dto.DeliveryResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Delivery with id %s not found", id)
	}
	resp := deliveryToResponse(d)
	return &resp, nil
}

func (s *deliveryService) List(ctx context.Context) ([]dto.DeliveryResponse, error) {
	deliveries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return deliveriesToResponse(deliveries), nil
}

func (s *deliveryService) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]dto.DeliveryResponse, error) {
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return nil, notFound(err, "Supplier with id %s not found", supplierID)
	}
	deliveries, err := s.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return deliveriesToResponse(deliveries), nil
}

func deliveriesToResponse(deliveries []model.Delivery) []dto.DeliveryResponse {
	out := make([]dto.DeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		out = append(out, deliveryToResponse(&deliveries[i]))
	}
	return out
}
