package service

import (
	"context"
	"strings"

	"fruitwarehouse/internal/apierror"
	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/model"
	"fruitwarehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ── Suppliers ─────────────────────────────────────────────────────────────────

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierror.Validation("Supplier name is required")
	}
	supplier := &model.Supplier{
		Name:         name,
		ContactEmail: req.ContactEmail,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	log.Info().Str("supplier_id", supplier.ID.String()).Str("name", name).Msg("supplier created")
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Supplier with id %s not found", id)
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

// ── Products ──────────────────────────────────────────────────────────────────

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
}

type productService struct {
	repo    repository.ProductRepository
	lookups repository.LookupRepository
}

func NewProductService(repo repository.ProductRepository, lookups repository.LookupRepository) ProductService {
	return &productService{repo: repo, lookups: lookups}
}

func parseTypeCode(raw string) (model.ProductTypeCode, error) {
	code, ok := model.ParseProductTypeCode(raw)
	if !ok {
		return "", apierror.Validation("Unknown product type %q", raw)
	}
	return code, nil
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code, err := parseTypeCode(req.ProductType)
	if err != nil {
		return nil, err
	}
	productType, err := s.lookups.FindProductTypeByCode(ctx, code)
	if err != nil {
		return nil, notFound(err, "Product type %s not found", code)
	}
	product := &model.Product{
		Name:          strings.TrimSpace(req.Name),
		ProductTypeID: productType.ID,
		ProductType:   productType,
		VarietyName:   strings.TrimSpace(req.VarietyName),
		Description:   req.Description,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Info().Str("product_id", product.ID.String()).Str("type", string(code)).Msg("product created")
	resp := productToResponse(product)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Product with id %s not found", id)
	}
	resp := productToResponse(product)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	var code model.ProductTypeCode
	if filter.Type != "" {
		c, err := parseTypeCode(filter.Type)
		if err != nil {
			return nil, err
		}
		code = c
	}
	products, err := s.repo.List(ctx, code)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productToResponse(&products[i]))
	}
	return out, nil
}

// ── Lookups ───────────────────────────────────────────────────────────────────

type LookupService interface {
	ListProductTypes(ctx context.Context) ([]dto.ProductTypeResponse, error)
	ListDeliveryStatuses(ctx context.Context) ([]dto.DeliveryStatusResponse, error)
}

type lookupService struct {
	repo repository.LookupRepository
}

func NewLookupService(repo repository.LookupRepository) LookupService {
	return &lookupService{repo: repo}
}

func (s *lookupService) ListProductTypes(ctx context.Context) ([]dto.ProductTypeResponse, error) {
	types, err := s.repo.ListProductTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.ProductTypeResponse{ID: t.ID, Code: string(t.Code), Name: t.Name, Description: t.Description})
	}
	return out, nil
}

func (s *lookupService) ListDeliveryStatuses(ctx context.Context) ([]dto.DeliveryStatusResponse, error) {
	statuses, err := s.repo.ListDeliveryStatuses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, dto.DeliveryStatusResponse{
			ID:          st.ID,
			Code:        string(st.Code),
			Name:        st.Name,
			Description: st.Description,
			SortOrder:   st.SortOrder,
		})
	}
	return out, nil
}
