package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

func itemsWithPrices(prices ...int64) []types.LineItem {
	items := make([]types.LineItem, 0, len(prices))
	for i, p := range prices {
		items = append(items, types.LineItem{
			ID:        string(rune('a' + i)),
			Name:      "item",
			UnitPrice: decimal.NewFromInt(p),
		})
	}
	return items
}

func TestComputeTotalsNoDiscount(t *testing.T) {
	totals, err := ComputeTotals(itemsWithPrices(10000, 5000), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(15000)), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(1950)), "tax: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(16950)), "total: %s", totals.Total)
}

func TestComputeTotalsWithDiscount(t *testing.T) {
	totals, err := ComputeTotals(itemsWithPrices(10000, 5000), decimal.NewFromInt(5000))
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(15000)))
	assert.True(t, totals.Discount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(1300)), "tax: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(11300)), "total: %s", totals.Total)
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals, err := ComputeTotals(nil, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotalsRoundsTaxOnce(t *testing.T) {
	// 0.13 * 350 = 45.5, rounds away from zero to 46.
	items := []types.LineItem{
		{ID: "a", UnitPrice: decimal.NewFromInt(150)},
		{ID: "b", UnitPrice: decimal.NewFromInt(200)},
	}
	totals, err := ComputeTotals(items, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(46)), "tax: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(396)), "total: %s", totals.Total)
}

func TestComputeTotalsFractionalPrices(t *testing.T) {
	items := []types.LineItem{
		{ID: "a", UnitPrice: decimal.RequireFromString("19.99")},
		{ID: "b", UnitPrice: decimal.RequireFromString("0.01")},
	}
	totals, err := ComputeTotals(items, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(20)))
	// 20 * 0.13 = 2.6, rounds to 3.
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(3)), "tax: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(23)))
}

func TestComputeTotalsNegativeUnitPrice(t *testing.T) {
	_, err := ComputeTotals(itemsWithPrices(10000, -5000), decimal.Zero)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidation))
}

func TestComputeTotalsNegativeDiscount(t *testing.T) {
	_, err := ComputeTotals(itemsWithPrices(100), decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidDiscount))
}

func TestComputeTotalsDiscountExceedsSubtotal(t *testing.T) {
	_, err := ComputeTotals(itemsWithPrices(100), decimal.NewFromInt(101))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidDiscount))
}

func TestComputeTotalsDiscountEqualsSubtotal(t *testing.T) {
	totals, err := ComputeTotals(itemsWithPrices(100), decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}
