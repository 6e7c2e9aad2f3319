package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fruitwarehouse/internal/apierror"
	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/middleware"
	"fruitwarehouse/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Stub services ─────────────────────────────────────────────────────────────

type stubDeliveries struct {
	create  func(req dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error)
	getByID func(id uuid.UUID) (*dto.DeliveryResponse, error)
}

func (s *stubDeliveries) Create(_ context.Context, req dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	return s.create(req)
}
func (s *stubDeliveries) GetByID(_ context.Context, id uuid.UUID) (*dto.DeliveryResponse, error) {
	return s.getByID(id)
}
func (s *stubDeliveries) List(context.Context) ([]dto.DeliveryResponse, error) {
	return []dto.DeliveryResponse{}, nil
}
func (s *stubDeliveries) ListBySupplier(context.Context, uuid.UUID) ([]dto.DeliveryResponse, error) {
	return nil, errors.New("connection reset by peer")
}

type stubPrices struct {
	activeDay *time.Time
	deleted   []uuid.UUID
}

func (s *stubPrices) AddPrice(context.Context, uuid.UUID, dto.CreatePriceRequest) (*dto.PriceResponse, error) {
	return nil, apierror.Conflict("Price period overlaps with existing price for period 2024-01-01 to 2024-06-30")
}
func (s *stubPrices) ListPrices(context.Context, uuid.UUID, dto.PriceFilter) ([]dto.PriceResponse, error) {
	return []dto.PriceResponse{}, nil
}
func (s *stubPrices) ListActivePrices(_ context.Context, _ uuid.UUID, day *time.Time) ([]dto.PriceResponse, error) {
	s.activeDay = day
	return []dto.PriceResponse{}, nil
}
func (s *stubPrices) DeletePrice(_ context.Context, _ uuid.UUID, priceID uuid.UUID) error {
	s.deleted = append(s.deleted, priceID)
	return nil
}

type stubReports struct {
	doc *report.Document
	err error
}

func (s *stubReports) Build(context.Context, dto.ReportRequest) (*dto.ReportResponse, error) {
	return nil, errors.New("not used")
}
func (s *stubReports) Generate(context.Context, dto.ReportRequest) (*report.Document, error) {
	return s.doc, s.err
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func deliveriesEngine(svc *stubDeliveries) *gin.Engine {
	r := newEngine()
	h := NewDeliveriesHandler(svc)
	r.POST("/api/v1/deliveries", h.Create)
	r.GET("/api/v1/deliveries/:id", h.GetByID)
	r.GET("/api/v1/deliveries/supplier/:supplierId", h.ListBySupplier)
	return r
}

// ── Deliveries ────────────────────────────────────────────────────────────────

func TestCreateDelivery_EmptyItemsReportsField(t *testing.T) {
	r := deliveriesEngine(&stubDeliveries{})
	body := `{"supplierId":"` + uuid.NewString() + `","items":[]}`

	w := do(r, http.MethodPost, "/api/v1/deliveries", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m := decode(t, w)
	assert.Equal(t, "Validation failed", m["message"])
	assert.Equal(t, "/api/v1/deliveries", m["path"])
	fields := m["validationErrors"].(map[string]any)
	assert.Equal(t, "must contain at least 1 item(s)", fields["items"])
}

func TestCreateDelivery_ItemFieldPaths(t *testing.T) {
	r := deliveriesEngine(&stubDeliveries{})
	body := `{"supplierId":"not-a-uuid","items":[{"productId":"` + uuid.NewString() + `","weight":0}]}`

	w := do(r, http.MethodPost, "/api/v1/deliveries", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["validationErrors"].(map[string]any)
	assert.Equal(t, "must be a valid UUID", fields["supplierId"])
	assert.Contains(t, fields, "items[0].weight")
}

func TestCreateDelivery_MalformedBody(t *testing.T) {
	r := deliveriesEngine(&stubDeliveries{})

	w := do(r, http.MethodPost, "/api/v1/deliveries", `{"items":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["message"], "Malformed request body")
}

func TestCreateDelivery_Created(t *testing.T) {
	var got dto.CreateDeliveryRequest
	svc := &stubDeliveries{create: func(req dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
		got = req
		return &dto.DeliveryResponse{ID: uuid.NewString(), TotalCost: decimal.RequireFromString("26.25")}, nil
	}}
	r := deliveriesEngine(svc)
	productID := uuid.NewString()
	body := `{"supplierId":"` + uuid.NewString() + `","deliveryDate":"2024-03-15T10:30:00",` +
		`"items":[{"productId":"` + productID + `","weight":"10.5"}]}`

	w := do(r, http.MethodPost, "/api/v1/deliveries", body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "26.25", decode(t, w)["totalCost"])
	require.Len(t, got.Items, 1)
	assert.Equal(t, productID, got.Items[0].ProductID)
	assert.True(t, got.Items[0].Weight.Equal(decimal.RequireFromString("10.5")))
	require.NotNil(t, got.DeliveryDate)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), got.DeliveryDate.Time())
}

func TestCreateDelivery_MissingPriceIsBadRequest(t *testing.T) {
	svc := &stubDeliveries{create: func(dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
		return nil, apierror.Validation("No active price found")
	}}
	r := deliveriesEngine(svc)
	body := `{"supplierId":"` + uuid.NewString() + `","items":[{"productId":"` + uuid.NewString() + `","weight":1}]}`

	w := do(r, http.MethodPost, "/api/v1/deliveries", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m := decode(t, w)
	assert.Equal(t, "No active price found", m["message"])
	assert.Equal(t, "Bad Request", m["error"])
	assert.NotContains(t, m, "validationErrors")
}

func TestGetDelivery_InvalidID(t *testing.T) {
	r := deliveriesEngine(&stubDeliveries{})

	w := do(r, http.MethodGet, "/api/v1/deliveries/123", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid delivery id", decode(t, w)["message"])
}

func TestGetDelivery_NotFound(t *testing.T) {
	svc := &stubDeliveries{getByID: func(id uuid.UUID) (*dto.DeliveryResponse, error) {
		return nil, apierror.NotFound("Delivery with id %s not found", id)
	}}
	r := deliveriesEngine(svc)
	id := uuid.New()

	w := do(r, http.MethodGet, "/api/v1/deliveries/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	m := decode(t, w)
	assert.Equal(t, "Delivery with id "+id.String()+" not found", m["message"])
	assert.EqualValues(t, 404, m["status"])
}

func TestUnexpectedErrorBecomesInternal(t *testing.T) {
	r := deliveriesEngine(&stubDeliveries{})

	w := do(r, http.MethodGet, "/api/v1/deliveries/supplier/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	m := decode(t, w)
	assert.Equal(t, apierror.Internal, m["message"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}

// ── Prices ────────────────────────────────────────────────────────────────────

func pricesEngine(svc *stubPrices) *gin.Engine {
	r := newEngine()
	h := NewPricesHandler(svc)
	r.POST("/api/v1/suppliers/:supplierId/prices", h.Add)
	r.GET("/api/v1/suppliers/:supplierId/prices/active", h.ListActive)
	r.DELETE("/api/v1/suppliers/:supplierId/prices/:priceId", h.Delete)
	return r
}

func TestAddPrice_OverlapIsConflict(t *testing.T) {
	r := pricesEngine(&stubPrices{})
	body := `{"productId":"` + uuid.NewString() + `","price":2.5,"effectiveFrom":"2024-06-15","effectiveTo":"2024-12-31"}`

	w := do(r, http.MethodPost, "/api/v1/suppliers/"+uuid.NewString()+"/prices", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w)["message"], "overlaps")
}

func TestAddPrice_ValidatesFields(t *testing.T) {
	r := pricesEngine(&stubPrices{})
	body := `{"productId":"` + uuid.NewString() + `","price":0}`

	w := do(r, http.MethodPost, "/api/v1/suppliers/"+uuid.NewString()+"/prices", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["validationErrors"].(map[string]any)
	assert.Contains(t, fields, "price")
	assert.Equal(t, "must not be empty", fields["effectiveFrom"])
}

func TestListActivePrices_DateParam(t *testing.T) {
	svc := &stubPrices{}
	r := pricesEngine(svc)

	w := do(r, http.MethodGet, "/api/v1/suppliers/"+uuid.NewString()+"/prices/active?date=2024-03-01", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.activeDay)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *svc.activeDay)

	w = do(r, http.MethodGet, "/api/v1/suppliers/"+uuid.NewString()+"/prices/active?date=2024-13-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["validationErrors"].(map[string]any)
	assert.Equal(t, "must be a date in YYYY-MM-DD format", fields["date"])
}

func TestDeletePrice_NoContent(t *testing.T) {
	svc := &stubPrices{}
	r := pricesEngine(svc)
	priceID := uuid.New()

	w := do(r, http.MethodDelete, "/api/v1/suppliers/"+uuid.NewString()+"/prices/"+priceID.String(), "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []uuid.UUID{priceID}, svc.deleted)
}

// ── Reports ───────────────────────────────────────────────────────────────────

func reportsEngine(svc *stubReports) *gin.Engine {
	r := newEngine()
	r.GET("/api/v1/reports", NewReportsHandler(svc).Get)
	return r
}

func TestReport_CSVIsAttachment(t *testing.T) {
	svc := &stubReports{doc: &report.Document{
		Format:      report.FormatCSV,
		ContentType: "text/csv; charset=utf-8",
		FileName:    "delivery_report_2024-01-01_2024-01-31.csv",
		Body:        []byte("Supplier,Product type\n"),
	}}
	r := reportsEngine(svc)

	w := do(r, http.MethodGet, "/api/v1/reports?startDate=2024-01-01&endDate=2024-01-31&format=csv", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="delivery_report_2024-01-01_2024-01-31.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Supplier,Product type\n", w.Body.String())
}

func TestReport_JSONInline(t *testing.T) {
	svc := &stubReports{doc: &report.Document{
		Format:      report.FormatJSON,
		ContentType: "application/json",
		Body:        []byte(`{"totalCost":"0"}`),
	}}
	r := reportsEngine(svc)

	w := do(r, http.MethodGet, "/api/v1/reports?startDate=2024-01-01&endDate=2024-01-31", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestReport_MissingDates(t *testing.T) {
	r := reportsEngine(&stubReports{})

	w := do(r, http.MethodGet, "/api/v1/reports?endDate=2024-01-31", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["validationErrors"].(map[string]any)
	assert.Equal(t, "must not be empty", fields["startDate"])
}

func TestReport_ServiceRejection(t *testing.T) {
	r := reportsEngine(&stubReports{err: apierror.Validation("Start date cannot be after end date")})

	w := do(r, http.MethodGet, "/api/v1/reports?startDate=2024-02-01&endDate=2024-01-31", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Start date cannot be after end date", decode(t, w)["message"])
}
