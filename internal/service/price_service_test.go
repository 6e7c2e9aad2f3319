package service

import (
	"context"
	"testing"
	"time"

	"fruitwarehouse/internal/apierror"
	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localDate(s string) *dto.LocalDate {
	d := dto.NewLocalDate(date(s))
	return &d
}

type priceFixture struct {
	*fixture
	supplier *model.Supplier
	gala     *model.Product
	svc      *priceService
}

func newPriceFixture() *priceFixture {
	f := &priceFixture{fixture: newFixture()}
	f.supplier = f.suppliers.add("Green Orchards")
	f.gala = f.products.add(model.ProductTypeApple, "Apple Gala", "Gala")
	f.svc = f.priceService(stubEpoch)
	return f
}

func (f *priceFixture) addPrice(price, from string, to *dto.LocalDate) (*dto.PriceResponse, error) {
	return f.svc.AddPrice(context.Background(), f.supplier.ID, dto.CreatePriceRequest{
		ProductID:     f.gala.ID.String(),
		Price:         dec(price),
		EffectiveFrom: localDate(from),
		EffectiveTo:   to,
	})
}

func TestAddPrice_Success(t *testing.T) {
	f := newPriceFixture()

	resp, err := f.addPrice("2.50", "2024-01-01", localDate("2024-06-30"))
	require.NoError(t, err)
	assert.Equal(t, "2.50", resp.Price.StringFixed(2))
	assert.Equal(t, "2024-01-01", resp.EffectiveFrom.String())
	require.NotNil(t, resp.EffectiveTo)
	assert.Equal(t, "2024-06-30", resp.EffectiveTo.String())
	assert.Equal(t, "Apple Gala", resp.ProductName)
	assert.Equal(t, "Apple", resp.ProductType)
	assert.Equal(t, 1, f.prices.creates)
}

func TestAddPrice_OverlapRejected(t *testing.T) {
	f := newPriceFixture()
	_, err := f.addPrice("2.50", "2024-01-01", localDate("2024-06-30"))
	require.NoError(t, err)

	_, err = f.addPrice("2.60", "2024-06-15", localDate("2024-12-31"))
	e := requireKind(t, err, apierror.KindValidation)
	assert.Equal(t, "Price period overlaps with existing price for period 2024-01-01 to 2024-06-30", e.Message)
	assert.Equal(t, 1, f.prices.creates)
}

func TestAddPrice_AdjacentOpenEndedAccepted(t *testing.T) {
	f := newPriceFixture()
	_, err := f.addPrice("2.50", "2024-01-01", localDate("2024-06-30"))
	require.NoError(t, err)

	resp, err := f.addPrice("2.80", "2024-07-01", nil)
	require.NoError(t, err)
	assert.Nil(t, resp.EffectiveTo)

	// Anything starting after an open-ended period collides with it.
	_, err = f.addPrice("3.00", "2030-01-01", localDate("2030-12-31"))
	e := requireKind(t, err, apierror.KindValidation)
	assert.Contains(t, e.Message, "2024-07-01 to indefinite")
}

func TestAddPrice_OverlapIsPerSupplierAndProduct(t *testing.T) {
	f := newPriceFixture()
	other := f.suppliers.add("Sunny Farm")
	pear := f.products.add(model.ProductTypePear, "Pear Conference", "Conference")
	_, err := f.addPrice("2.50", "2024-01-01", nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = f.svc.AddPrice(ctx, other.ID, dto.CreatePriceRequest{
		ProductID: f.gala.ID.String(), Price: dec("2.40"), EffectiveFrom: localDate("2024-01-01"),
	})
	require.NoError(t, err)
	_, err = f.svc.AddPrice(ctx, f.supplier.ID, dto.CreatePriceRequest{
		ProductID: pear.ID.String(), Price: dec("1.90"), EffectiveFrom: localDate("2024-01-01"),
	})
	require.NoError(t, err)
}

func TestAddPrice_Validation(t *testing.T) {
	f := newPriceFixture()

	_, err := f.addPrice("2.50", "2024-07-01", localDate("2024-06-30"))
	e := requireKind(t, err, apierror.KindValidation)
	assert.Equal(t, "Effective from date cannot be after effective to date", e.Message)

	_, err = f.addPrice("0.001", "2024-01-01", nil)
	requireKind(t, err, apierror.KindValidation)

	// A single-day period is valid.
	_, err = f.addPrice("2.50", "2024-07-01", localDate("2024-07-01"))
	require.NoError(t, err)
}

func TestAddPrice_NotFound(t *testing.T) {
	f := newPriceFixture()
	ctx := context.Background()

	_, err := f.svc.AddPrice(ctx, uuid.New(), dto.CreatePriceRequest{
		ProductID: f.gala.ID.String(), Price: dec("1"), EffectiveFrom: localDate("2024-01-01"),
	})
	requireKind(t, err, apierror.KindNotFound)

	_, err = f.svc.AddPrice(ctx, f.supplier.ID, dto.CreatePriceRequest{
		ProductID: uuid.NewString(), Price: dec("1"), EffectiveFrom: localDate("2024-01-01"),
	})
	requireKind(t, err, apierror.KindNotFound)
}

func TestListPrices(t *testing.T) {
	f := newPriceFixture()
	pear := f.products.add(model.ProductTypePear, "Pear Conference", "Conference")
	f.prices.add(f.supplier.ID, f.gala.ID, "2.50", "2024-01-01", datePtr("2024-06-30"))
	f.prices.add(f.supplier.ID, f.gala.ID, "2.80", "2024-07-01", nil)
	f.prices.add(f.supplier.ID, pear.ID, "1.99", "2024-01-01", nil)
	ctx := context.Background()

	all, err := f.svc.ListPrices(ctx, f.supplier.ID, dto.PriceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	gala, err := f.svc.ListPrices(ctx, f.supplier.ID, dto.PriceFilter{ProductID: f.gala.ID.String()})
	require.NoError(t, err)
	require.Len(t, gala, 2)
	assert.Equal(t, "2024-07-01", gala[0].EffectiveFrom.String())

	_, err = f.svc.ListPrices(ctx, f.supplier.ID, dto.PriceFilter{ProductID: uuid.NewString()})
	requireKind(t, err, apierror.KindNotFound)
	_, err = f.svc.ListPrices(ctx, uuid.New(), dto.PriceFilter{})
	requireKind(t, err, apierror.KindNotFound)
}

func TestListActivePrices(t *testing.T) {
	f := newPriceFixture()
	f.prices.add(f.supplier.ID, f.gala.ID, "2.50", "2024-01-01", datePtr("2024-06-30"))
	f.prices.add(f.supplier.ID, f.gala.ID, "2.80", "2024-07-01", nil)
	ctx := context.Background()

	today, err := f.svc.ListActivePrices(ctx, f.supplier.ID, nil)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "2.50", today[0].Price.StringFixed(2))

	later := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	sept, err := f.svc.ListActivePrices(ctx, f.supplier.ID, &later)
	require.NoError(t, err)
	require.Len(t, sept, 1)
	assert.Equal(t, "2.80", sept[0].Price.StringFixed(2))

	earlier := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	none, err := f.svc.ListActivePrices(ctx, f.supplier.ID, &earlier)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeletePrice_ScopedToSupplier(t *testing.T) {
	f := newPriceFixture()
	other := f.suppliers.add("Sunny Farm")
	price := f.prices.add(f.supplier.ID, f.gala.ID, "2.50", "2024-01-01", nil)
	ctx := context.Background()

	err := f.svc.DeletePrice(ctx, other.ID, price.ID)
	e := requireKind(t, err, apierror.KindNotFound)
	assert.Equal(t, "Price not found or doesn't belong to this supplier", e.Message)
	assert.Len(t, f.prices.prices, 1)

	require.NoError(t, f.svc.DeletePrice(ctx, f.supplier.ID, price.ID))
	assert.Empty(t, f.prices.prices)

	err = f.svc.DeletePrice(ctx, f.supplier.ID, price.ID)
	requireKind(t, err, apierror.KindNotFound)
}
