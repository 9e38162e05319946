package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

type fixture struct {
	store    *Store
	macbook  *domain.Product
	earbuds  *domain.Product
	pixel    *domain.Product
	license  *domain.Product
	shipping *domain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{}
	var err error
	f.macbook, err = domain.NewProduct("MacBook Air M2", decimal.NewFromInt(1450), 100)
	require.NoError(t, err)
	f.earbuds, err = domain.NewProduct("Bose QuietComfort Earbuds", decimal.NewFromInt(250), 500)
	require.NoError(t, err)
	f.pixel, err = domain.NewProduct("Google Pixel 7", decimal.NewFromInt(500), 250)
	require.NoError(t, err)
	f.license, err = domain.NewUnlimitedProduct("Windows License", decimal.NewFromInt(125))
	require.NoError(t, err)
	f.shipping, err = domain.NewLimitedProduct("Shipping", decimal.NewFromInt(10), 250, 1)
	require.NoError(t, err)

	f.store, err = New([]*domain.Product{f.macbook, f.earbuds, f.pixel, f.license, f.shipping}, logger.New("test"))
	require.NoError(t, err)
	return f
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestNew_RejectsDuplicateNames(t *testing.T) {
	a, err := domain.NewProduct("Google Pixel 7", decimal.NewFromInt(500), 1)
	require.NoError(t, err)
	b, err := domain.NewProduct("Google Pixel 7", decimal.NewFromInt(450), 2)
	require.NoError(t, err)

	s, err := New([]*domain.Product{a, b}, logger.New("test"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Nil(t, s)
}

func TestStore_AllProducts(t *testing.T) {
	f := newFixture(t)
	f.pixel.Deactivate()

	active := f.store.AllProducts(false)
	assert.Equal(t, []*domain.Product{f.macbook, f.earbuds, f.license, f.shipping}, active)

	all := f.store.AllProducts(true)
	assert.Len(t, all, 5)
	assert.Equal(t, f.pixel, all[2])
}

func TestStore_TotalQuantity(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 100+500+250+250, f.store.TotalQuantity())

	f.pixel.Deactivate()
	assert.Equal(t, 100+500+250, f.store.TotalQuantity())
}

func TestStore_AddAndRemoveProduct(t *testing.T) {
	f := newFixture(t)

	tablet, err := domain.NewProduct("iPad", decimal.NewFromInt(600), 10)
	require.NoError(t, err)
	require.NoError(t, f.store.AddProduct(tablet))
	assert.Len(t, f.store.AllProducts(true), 6)

	assert.ErrorIs(t, f.store.AddProduct(nil), domain.ErrInvalidArgument)

	f.store.RemoveProduct(f.earbuds)
	assert.Len(t, f.store.AllProducts(true), 5)

	// removing an absent product is a no-op
	f.store.RemoveProduct(f.earbuds)
	f.store.RemoveProduct(nil)
	assert.Len(t, f.store.AllProducts(true), 5)

	_, err = f.store.Lookup("Bose QuietComfort Earbuds")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Lookup(t *testing.T) {
	f := newFixture(t)
	f.pixel.Deactivate()

	product, err := f.store.Lookup("Google Pixel 7")
	require.NoError(t, err)
	assert.Same(t, f.pixel, product)
}

func TestStore_Update(t *testing.T) {
	f := newFixture(t)

	err := f.store.Update("Google Pixel 7", func(p *domain.Product) error {
		return p.SetQuantity(0)
	})
	require.NoError(t, err)
	assert.False(t, f.pixel.IsActive())

	err = f.store.Update("Nokia 3310", func(p *domain.Product) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Order_Success(t *testing.T) {
	f := newFixture(t)

	receipt := f.store.Order([]OrderLine{
		Line(f.macbook, 1),
		Line(f.earbuds, 2),
	})

	assertDecimal(t, "1950", receipt.Total)
	assert.Empty(t, receipt.Failed())
	require.Len(t, receipt.Lines, 2)
	assertDecimal(t, "1450", receipt.Lines[0].Price)
	assertDecimal(t, "500", receipt.Lines[1].Price)
	assert.Equal(t, 99, f.macbook.Quantity().Units)
	assert.Equal(t, 498, f.earbuds.Quantity().Units)
}

func TestStore_Order_PartialFulfillment(t *testing.T) {
	f := newFixture(t)

	receipt := f.store.Order([]OrderLine{
		Line(f.pixel, 2),
		Line(f.macbook, 101),
	})

	assertDecimal(t, "1000", receipt.Total)
	failed := receipt.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "MacBook Air M2", failed[0].Product)
	assert.ErrorIs(t, failed[0].Err, domain.ErrInsufficientStock)
	assert.Equal(t, 100, f.macbook.Quantity().Units)
	assert.True(t, f.macbook.IsActive())
	assert.Equal(t, 248, f.pixel.Quantity().Units)
}

func TestStore_Order_LineFailures(t *testing.T) {
	f := newFixture(t)
	f.pixel.Deactivate()

	receipt := f.store.Order([]OrderLine{
		LineByName("Nokia 3310", 1),
		Line(f.pixel, 1),
		Line(f.earbuds, 0),
		Line(f.shipping, 2),
		Line(f.license, 3),
	})

	assertDecimal(t, "375", receipt.Total)
	require.Len(t, receipt.Lines, 5)
	assert.ErrorIs(t, receipt.Lines[0].Err, domain.ErrProductUnavailable)
	assert.ErrorIs(t, receipt.Lines[1].Err, domain.ErrProductUnavailable)
	assert.ErrorIs(t, receipt.Lines[2].Err, domain.ErrInvalidQuantity)
	assert.ErrorIs(t, receipt.Lines[3].Err, domain.ErrLimitExceeded)
	assert.True(t, receipt.Lines[4].Succeeded())
	assert.Len(t, receipt.Failed(), 4)
	assert.Equal(t, 250, f.shipping.Quantity().Units)
	assert.Equal(t, 500, f.earbuds.Quantity().Units)
}

func TestStore_Order_ResolvesByName(t *testing.T) {
	f := newFixture(t)

	receipt := f.store.Order([]OrderLine{LineByName("Google Pixel 7", 1)})
	assertDecimal(t, "500", receipt.Total)
	assert.Equal(t, 249, f.pixel.Quantity().Units)
}

func TestStore_Order_DepletesAndDeactivates(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.pixel.SetQuantity(3))

	receipt := f.store.Order([]OrderLine{
		Line(f.pixel, 3),
		Line(f.pixel, 1),
	})

	assertDecimal(t, "1500", receipt.Total)
	assert.False(t, f.pixel.IsActive())
	assert.ErrorIs(t, receipt.Lines[1].Err, domain.ErrProductUnavailable)
	assert.NotContains(t, f.store.AllProducts(false), f.pixel)
}

func TestStore_Order_AppliesPromotions(t *testing.T) {
	f := newFixture(t)

	half, err := domain.NewSecondItemHalfPrice("Second item at half price")
	require.NoError(t, err)
	bundle, err := domain.NewBuyTwoGetOneFree("Buy 2, get 1 free")
	require.NoError(t, err)
	percent, err := domain.NewPercentageDiscount("30% off", 30)
	require.NoError(t, err)
	f.macbook.SetPromotion(half)
	f.earbuds.SetPromotion(bundle)
	f.license.SetPromotion(percent)

	receipt := f.store.Order([]OrderLine{
		Line(f.macbook, 2),
		Line(f.earbuds, 3),
		Line(f.license, 1),
	})

	assertDecimal(t, "2762.5", receipt.Total)
}

func TestStore_Order_Empty(t *testing.T) {
	f := newFixture(t)

	receipt := f.store.Order(nil)
	assert.True(t, receipt.Total.IsZero())
	assert.Empty(t, receipt.Lines)
}
