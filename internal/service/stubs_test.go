package service

import (
	"context"
	"sort"
	"time"

	"fruitwarehouse/internal/apierror"
	"fruitwarehouse/internal/model"
	"fruitwarehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var stubEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock { return func() time.Time { return t } }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── In-memory SupplierRepository stub ────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) add(name string) *model.Supplier {
	s := &model.Supplier{ID: uuid.New(), Name: name, CreatedAt: stubEpoch}
	r.suppliers[s.ID] = s
	return s
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	for _, existing := range r.suppliers {
		if existing.Name == s.Name {
			return apierror.Conflict("Supplier with name %q already exists", s.Name)
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = stubEpoch
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── In-memory LookupRepository stub ──────────────────────────────────────────

type stubLookupRepo struct {
	types    []model.ProductType
	statuses []model.DeliveryStatus
}

func newStubLookupRepo() *stubLookupRepo {
	return &stubLookupRepo{
		types: []model.ProductType{
			{ID: 1, Code: model.ProductTypeApple, Name: "Apple", IsActive: true},
			{ID: 2, Code: model.ProductTypePear, Name: "Pear", IsActive: true},
		},
		statuses: []model.DeliveryStatus{
			{ID: 1, Code: model.DeliveryStatusCreated, Name: "Created", IsActive: true, SortOrder: 1},
			{ID: 2, Code: model.DeliveryStatusInProgress, Name: "In progress", IsActive: true, SortOrder: 2},
			{ID: 3, Code: model.DeliveryStatusCompleted, Name: "Completed", IsActive: true, SortOrder: 3},
			{ID: 4, Code: model.DeliveryStatusCancelled, Name: "Cancelled", IsActive: true, SortOrder: 4},
		},
	}
}

func (r *stubLookupRepo) FindProductTypeByCode(_ context.Context, code model.ProductTypeCode) (*model.ProductType, error) {
	for i := range r.types {
		if r.types[i].Code == code {
			return &r.types[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLookupRepo) ListProductTypes(_ context.Context) ([]model.ProductType, error) {
	return r.types, nil
}

func (r *stubLookupRepo) FindDeliveryStatusByCode(_ context.Context, code model.DeliveryStatusCode) (*model.DeliveryStatus, error) {
	for i := range r.statuses {
		if r.statuses[i].Code == code {
			return &r.statuses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLookupRepo) ListDeliveryStatuses(_ context.Context) ([]model.DeliveryStatus, error) {
	return r.statuses, nil
}

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	lookups  *stubLookupRepo
}

func newStubProductRepo(lookups *stubLookupRepo) *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product), lookups: lookups}
}

func (r *stubProductRepo) add(code model.ProductTypeCode, name, variety string) *model.Product {
	pt, _ := r.lookups.FindProductTypeByCode(context.Background(), code)
	p := &model.Product{ID: uuid.New(), Name: name, ProductTypeID: pt.ID, ProductType: pt, VarietyName: variety, CreatedAt: stubEpoch}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = stubEpoch
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, code model.ProductTypeCode) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if code == "" || p.ProductType.Code == code {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VarietyName < out[j].VarietyName })
	return out, nil
}

// ── In-memory PriceRepository stub ───────────────────────────────────────────

type stubPriceRepo struct {
	prices   []*model.SupplierProductPrice
	products *stubProductRepo
	creates  int
}

func newStubPriceRepo(products *stubProductRepo) *stubPriceRepo {
	return &stubPriceRepo{products: products}
}

func (r *stubPriceRepo) add(supplierID, productID uuid.UUID, price string, from string, to *time.Time) *model.SupplierProductPrice {
	p := &model.SupplierProductPrice{
		ID:            uuid.New(),
		SupplierID:    supplierID,
		ProductID:     productID,
		Price:         dec(price),
		EffectiveFrom: date(from),
		EffectiveTo:   to,
		CreatedAt:     stubEpoch,
		Product:       r.products.products[productID],
	}
	r.prices = append(r.prices, p)
	return p
}

func (r *stubPriceRepo) DB() *gorm.DB { return nil }

func (r *stubPriceRepo) filter(keep func(p *model.SupplierProductPrice) bool) []model.SupplierProductPrice {
	var out []model.SupplierProductPrice
	for _, p := range r.prices {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out
}

func (r *stubPriceRepo) FindActive(_ context.Context, supplierID, productID uuid.UUID, day time.Time) (*model.SupplierProductPrice, error) {
	matches := r.filter(func(p *model.SupplierProductPrice) bool {
		return p.SupplierID == supplierID && p.ProductID == productID && p.Period().Contains(day)
	})
	if len(matches) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &matches[0], nil
}

func (r *stubPriceRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]model.SupplierProductPrice, error) {
	return r.filter(func(p *model.SupplierProductPrice) bool { return p.SupplierID == supplierID }), nil
}

func (r *stubPriceRepo) ListBySupplierAndProduct(_ context.Context, supplierID, productID uuid.UUID) ([]model.SupplierProductPrice, error) {
	return r.filter(func(p *model.SupplierProductPrice) bool {
		return p.SupplierID == supplierID && p.ProductID == productID
	}), nil
}

func (r *stubPriceRepo) ListActiveBySupplier(_ context.Context, supplierID uuid.UUID, day time.Time) ([]model.SupplierProductPrice, error) {
	return r.filter(func(p *model.SupplierProductPrice) bool {
		return p.SupplierID == supplierID && p.Period().Contains(day)
	}), nil
}

func (r *stubPriceRepo) FindByIDAndSupplier(_ context.Context, id, supplierID uuid.UUID) (*model.SupplierProductPrice, error) {
	for _, p := range r.prices {
		if p.ID == id && p.SupplierID == supplierID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPriceRepo) ListForPair(ctx context.Context, _ *gorm.DB, supplierID, productID uuid.UUID) ([]model.SupplierProductPrice, error) {
	return r.ListBySupplierAndProduct(ctx, supplierID, productID)
}

func (r *stubPriceRepo) Create(_ context.Context, _ *gorm.DB, p *model.SupplierProductPrice) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = stubEpoch
	r.prices = append(r.prices, p)
	r.creates++
	return nil
}

func (r *stubPriceRepo) Delete(_ context.Context, target *model.SupplierProductPrice) error {
	for i, p := range r.prices {
		if p.ID == target.ID {
			r.prices = append(r.prices[:i], r.prices[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── In-memory DeliveryRepository stub ────────────────────────────────────────

type stubDeliveryRepo struct {
	deliveries []*model.Delivery
	suppliers  *stubSupplierRepo
	products   *stubProductRepo
	lookups    *stubLookupRepo
	createErr  error
}

func (r *stubDeliveryRepo) DB() *gorm.DB { return nil }

func (r *stubDeliveryRepo) Create(_ context.Context, _ *gorm.DB, d *model.Delivery) error {
	if r.createErr != nil {
		return r.createErr
	}
	d.ID = uuid.New()
	d.CreatedAt = stubEpoch
	for i := range d.Items {
		d.Items[i].ID = uuid.New()
		d.Items[i].DeliveryID = d.ID
		d.Items[i].CalculateTotalPrice()
	}
	r.deliveries = append(r.deliveries, d)
	return nil
}

// hydrate mimics the preloads of the GORM repository.
func (r *stubDeliveryRepo) hydrate(d *model.Delivery) model.Delivery {
	out := *d
	out.Supplier = r.suppliers.suppliers[d.SupplierID]
	for i := range r.lookups.statuses {
		if r.lookups.statuses[i].ID == d.StatusID {
			out.Status = &r.lookups.statuses[i]
		}
	}
	out.Items = make([]model.DeliveryItem, len(d.Items))
	for i, it := range d.Items {
		it.Product = r.products.products[it.ProductID]
		out.Items[i] = it
	}
	return out
}

func (r *stubDeliveryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Delivery, error) {
	for _, d := range r.deliveries {
		if d.ID == id {
			out := r.hydrate(d)
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDeliveryRepo) list(keep func(d *model.Delivery) bool) []model.Delivery {
	var out []model.Delivery
	for _, d := range r.deliveries {
		if keep(d) {
			out = append(out, r.hydrate(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryDate.After(out[j].DeliveryDate) })
	return out
}

func (r *stubDeliveryRepo) List(_ context.Context) ([]model.Delivery, error) {
	return r.list(func(*model.Delivery) bool { return true }), nil
}

func (r *stubDeliveryRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]model.Delivery, error) {
	return r.list(func(d *model.Delivery) bool { return d.SupplierID == supplierID }), nil
}

// ── ReportRepository stub ────────────────────────────────────────────────────

type stubReportRepo struct {
	summary  []repository.SummaryRow
	detailed []repository.DetailedRow
	calls    int
	from     time.Time
	until    time.Time
}

func (r *stubReportRepo) Summary(_ context.Context, from, until time.Time) ([]repository.SummaryRow, error) {
	r.calls++
	r.from, r.until = from, until
	return r.summary, nil
}

func (r *stubReportRepo) Detailed(_ context.Context, from, until time.Time) ([]repository.DetailedRow, error) {
	r.calls++
	r.from, r.until = from, until
	return r.detailed, nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	suppliers  *stubSupplierRepo
	lookups    *stubLookupRepo
	products   *stubProductRepo
	prices     *stubPriceRepo
	deliveries *stubDeliveryRepo
}

func newFixture() *fixture {
	f := &fixture{suppliers: newStubSupplierRepo(), lookups: newStubLookupRepo()}
	f.products = newStubProductRepo(f.lookups)
	f.prices = newStubPriceRepo(f.products)
	f.deliveries = &stubDeliveryRepo{suppliers: f.suppliers, products: f.products, lookups: f.lookups}
	return f
}

func (f *fixture) deliveryService(now time.Time) *deliveryService {
	svc := NewDeliveryService(f.deliveries, f.suppliers, f.products, f.prices, f.lookups).(*deliveryService)
	svc.now = fixedClock(now)
	return svc
}

func (f *fixture) priceService(now time.Time) *priceService {
	svc := NewPriceService(f.prices, f.suppliers, f.products).(*priceService)
	svc.now = fixedClock(now)
	return svc
}
