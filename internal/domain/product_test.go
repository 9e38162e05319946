package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Success(t *testing.T) {
	product, err := NewProduct("MacBook Air M2", decimal.NewFromInt(1450), 100)
	require.NoError(t, err)

	assert.Equal(t, "MacBook Air M2", product.Name())
	assertDecimal(t, "1450", product.Price())
	assert.Equal(t, Stock{Units: 100}, product.Quantity())
	assert.True(t, product.IsActive())
	assert.Equal(t, KindStocked, product.Kind())
	assert.NotEqual(t, product.ID(), mustProduct(t, "Other", 1, 1).ID())
}

func TestNewProduct_ZeroStockStartsInactive(t *testing.T) {
	product, err := NewProduct("Empty shelf", decimal.NewFromInt(5), 0)
	require.NoError(t, err)
	assert.False(t, product.IsActive())
}

func TestNewProduct_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		price    decimal.Decimal
		quantity int
	}{
		{name: "empty name", product: "", price: decimal.NewFromInt(1450), quantity: 100},
		{name: "blank name", product: "   ", price: decimal.NewFromInt(1450), quantity: 100},
		{name: "negative price", product: "MacBook Air M2", price: decimal.NewFromInt(-10), quantity: 100},
		{name: "negative quantity", product: "MacBook Air M2", price: decimal.NewFromInt(1450), quantity: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := NewProduct(tt.product, tt.price, tt.quantity)
			assert.ErrorIs(t, err, ErrInvalidConstruction)
			assert.Nil(t, product)
		})
	}
}

func TestNewLimitedProduct_InvalidMaximum(t *testing.T) {
	for _, maximum := range []int{0, -1} {
		product, err := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 250, maximum)
		assert.ErrorIs(t, err, ErrInvalidConstruction)
		assert.Nil(t, product)
	}
}

func TestProduct_Purchase_ReducesStock(t *testing.T) {
	product := mustProduct(t, "MacBook Air M2", 1450, 100)

	total, err := product.Purchase(2)
	require.NoError(t, err)
	assertDecimal(t, "2900", total)
	assert.Equal(t, 98, product.Quantity().Units)
	assert.True(t, product.IsActive())
}

func TestProduct_Purchase_DepletionDeactivates(t *testing.T) {
	product := mustProduct(t, "MacBook Air M2", 1450, 3)

	_, err := product.Purchase(3)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity().Units)
	assert.False(t, product.IsActive())

	require.NoError(t, product.Restock(5))
	assert.Equal(t, 5, product.Quantity().Units)
	assert.True(t, product.IsActive())
}

func TestProduct_Purchase_InsufficientStock(t *testing.T) {
	product := mustProduct(t, "MacBook Air M2", 1450, 10)

	total, err := product.Purchase(20)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, total.IsZero())
	assert.Equal(t, 10, product.Quantity().Units)
	assert.True(t, product.IsActive())
}

func TestProduct_Purchase_InvalidQuantity(t *testing.T) {
	product := mustProduct(t, "MacBook Air M2", 1450, 10)

	for _, quantity := range []int{0, -1} {
		_, err := product.Purchase(quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Equal(t, 10, product.Quantity().Units)
}

func TestProduct_Purchase_WithPromotion(t *testing.T) {
	product := mustProduct(t, "Bose QuietComfort Earbuds", 250, 500)
	promo, err := NewBuyTwoGetOneFree("Buy 2, get 1 free")
	require.NoError(t, err)
	product.SetPromotion(promo)

	total, err := product.Purchase(3)
	require.NoError(t, err)
	assertDecimal(t, "500", total)
	assert.Equal(t, 497, product.Quantity().Units)

	product.SetPromotion(nil)
	total, err = product.Purchase(3)
	require.NoError(t, err)
	assertDecimal(t, "750", total)
}

func TestUnlimitedProduct_Purchase(t *testing.T) {
	product, err := NewUnlimitedProduct("Windows License", decimal.NewFromInt(125))
	require.NoError(t, err)

	assert.Equal(t, Stock{Unlimited: true}, product.Quantity())
	assert.Equal(t, "unlimited", product.Quantity().String())
	assert.True(t, product.IsActive())
	assert.False(t, product.StockTracked())

	_, err = product.Purchase(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	total, err := product.Purchase(1)
	require.NoError(t, err)
	assertDecimal(t, "125", total)

	total, err = product.Purchase(5000)
	require.NoError(t, err)
	assertDecimal(t, "625000", total)
	assert.True(t, product.IsActive())
	assert.Equal(t, Stock{Unlimited: true}, product.Quantity())
}

func TestUnlimitedProduct_PurchaseWithPromotion(t *testing.T) {
	product, err := NewUnlimitedProduct("Windows License", decimal.NewFromInt(125))
	require.NoError(t, err)
	promo, err := NewPercentageDiscount("30% off", 30)
	require.NoError(t, err)
	product.SetPromotion(promo)

	total, err := product.Purchase(2)
	require.NoError(t, err)
	assertDecimal(t, "175", total)
}

func TestUnlimitedProduct_SetQuantityIsIgnored(t *testing.T) {
	product, err := NewUnlimitedProduct("Windows License", decimal.NewFromInt(125))
	require.NoError(t, err)

	require.NoError(t, product.SetQuantity(0))
	assert.True(t, product.IsActive())
	assert.True(t, product.Quantity().Unlimited)
}

func TestLimitedProduct_Purchase(t *testing.T) {
	product, err := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 250, 1)
	require.NoError(t, err)

	total, err := product.Purchase(1)
	require.NoError(t, err)
	assertDecimal(t, "10", total)
	assert.Equal(t, 249, product.Quantity().Units)

	_, err = product.Purchase(2)
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Equal(t, 249, product.Quantity().Units)

	_, err = product.Purchase(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestLimitedProduct_PurchaseAtMaximum(t *testing.T) {
	product, err := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 250, 3)
	require.NoError(t, err)

	total, err := product.Purchase(3)
	require.NoError(t, err)
	assertDecimal(t, "30", total)
	assert.Equal(t, 247, product.Quantity().Units)

	_, err = product.Purchase(4)
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestLimitedProduct_StockStillApplies(t *testing.T) {
	product, err := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 2, 5)
	require.NoError(t, err)

	_, err = product.Purchase(3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = product.Purchase(2)
	require.NoError(t, err)
	assert.False(t, product.IsActive())
}

func TestProduct_SetQuantity(t *testing.T) {
	product := mustProduct(t, "Google Pixel 7", 500, 1)

	require.NoError(t, product.SetQuantity(0))
	assert.Equal(t, 0, product.Quantity().Units)
	assert.False(t, product.IsActive())

	require.NoError(t, product.SetQuantity(1000))
	assert.True(t, product.IsActive())

	err := product.SetQuantity(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1000, product.Quantity().Units)
}

func TestProduct_Restock_InvalidUnits(t *testing.T) {
	product := mustProduct(t, "Google Pixel 7", 500, 1)
	assert.ErrorIs(t, product.Restock(0), ErrInvalidArgument)
	assert.Equal(t, 1, product.Quantity().Units)
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	product := mustProduct(t, "Google Pixel 7", 500, 5)

	product.Deactivate()
	assert.False(t, product.IsActive())
	require.NoError(t, product.Activate())
	assert.True(t, product.IsActive())

	require.NoError(t, product.SetQuantity(0))
	assert.ErrorIs(t, product.Activate(), ErrInsufficientStock)
	assert.False(t, product.IsActive())
}

func TestProduct_Describe(t *testing.T) {
	product := mustProduct(t, "MacBook Air M2", 1450, 100)
	assert.Equal(t, "MacBook Air M2, Price: 1450, Quantity: 100, No promotion", product.Describe().String())

	promo, err := NewSecondItemHalfPrice("Second item at half price")
	require.NoError(t, err)
	product.SetPromotion(promo)

	view := product.Describe()
	assert.Equal(t, "Second item at half price", view.Promotion)
	assert.Nil(t, view.Maximum)
	assert.Equal(t, "MacBook Air M2, Price: 1450, Quantity: 100, Promotion: Second item at half price", view.String())
}

func TestProduct_DescribeVariants(t *testing.T) {
	license, err := NewUnlimitedProduct("Windows License", decimal.NewFromInt(125))
	require.NoError(t, err)
	assert.Equal(t, "Windows License, Price: 125, Quantity: unlimited, No promotion", license.Describe().String())

	shipping, err := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 250, 1)
	require.NoError(t, err)
	view := shipping.Describe()
	require.NotNil(t, view.Maximum)
	assert.Equal(t, 1, *view.Maximum)
	assert.Equal(t, "Shipping, Price: 10, Quantity: 250, No promotion, Maximum per order: 1", view.String())
}

func TestParseProductKind(t *testing.T) {
	kind, err := ParseProductKind("")
	require.NoError(t, err)
	assert.Equal(t, KindStocked, kind)

	kind, err = ParseProductKind(" Limited ")
	require.NoError(t, err)
	assert.Equal(t, KindLimited, kind)

	_, err = ParseProductKind("rental")
	assert.ErrorIs(t, err, ErrInvalidConstruction)
}

func mustProduct(t *testing.T, name string, price int64, quantity int) *Product {
	t.Helper()
	product, err := NewProduct(name, decimal.NewFromInt(price), quantity)
	require.NoError(t, err)
	return product
}
