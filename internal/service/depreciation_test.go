package service

import (
	"testing"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "got %s, want %s", got, want)
}

// daysAgo keeps the arithmetic in whole days, matching how years in service
// are measured.
func daysAgo(asOf time.Time, days int) time.Time {
	return asOf.AddDate(0, 0, -days)
}

func TestYearsInService(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("zero on the purchase day", func(t *testing.T) {
		assert.True(t, YearsInService(asOf, asOf).IsZero())
	})

	t.Run("1461 days is exactly four years", func(t *testing.T) {
		years := YearsInService(daysAgo(asOf, 1461), asOf)
		assertDecimal(t, "4", years)
	})

	t.Run("365 days falls just short of a year", func(t *testing.T) {
		years := YearsInService(daysAgo(asOf, 365), asOf)
		assert.True(t, years.LessThan(decimal.NewFromInt(1)))
		assert.True(t, years.GreaterThan(decimal.RequireFromString("0.99")))
	})

	t.Run("partial days are dropped", func(t *testing.T) {
		purchased := asOf.Add(-36 * time.Hour)
		years := YearsInService(purchased, asOf)
		assertDecimal(t, "1", years.Mul(daysPerYear))
	})
}

func TestDepreciationStraightLine(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	cost := decimal.NewFromInt(1000)

	t.Run("four years into a five year life", func(t *testing.T) {
		d := DepreciationFor(model.DepreciationStraightLine, cost, 5, daysAgo(asOf, 1461), asOf)
		assertDecimal(t, "200", d.NetBookValue)
		assertDecimal(t, "800", d.AccumulatedDepreciation)
	})

	t.Run("book value bottoms out at zero", func(t *testing.T) {
		d := DepreciationFor(model.DepreciationStraightLine, cost, 5, daysAgo(asOf, 2922), asOf)
		assert.True(t, d.NetBookValue.IsZero(), "net book value = %s", d.NetBookValue)
		assertDecimal(t, "1000", d.AccumulatedDepreciation)
	})

	t.Run("purchased today is worth full cost", func(t *testing.T) {
		d := DepreciationFor(model.DepreciationStraightLine, cost, 5, asOf, asOf)
		assertDecimal(t, "1000", d.NetBookValue)
		assert.True(t, d.AccumulatedDepreciation.IsZero())
	})

	t.Run("future purchase date is worth full cost", func(t *testing.T) {
		d := DepreciationFor(model.DepreciationStraightLine, cost, 5, asOf.AddDate(0, 0, 30), asOf)
		assertDecimal(t, "1000", d.NetBookValue)
		assert.True(t, d.AccumulatedDepreciation.IsZero())
	})

	t.Run("zero economic life is fully written off", func(t *testing.T) {
		d := DepreciationFor(model.DepreciationStraightLine, cost, 0, daysAgo(asOf, 1), asOf)
		assert.True(t, d.NetBookValue.IsZero())
		assertDecimal(t, "1000", d.AccumulatedDepreciation)
	})
}

func TestDepreciationDecliningBalance(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	cost := decimal.NewFromInt(1000)

	t.Run("writes down once per completed year", func(t *testing.T) {
		// 40% of the remaining balance each year: 400, 240, 144, 86.4.
		d := DepreciationFor(model.DepreciationDecliningBalance, cost, 5, daysAgo(asOf, 1461), asOf)
		assertDecimal(t, "129.6", d.NetBookValue)
		assertDecimal(t, "870.4", d.AccumulatedDepreciation)
	})

	t.Run("a partial second year does not write down", func(t *testing.T) {
		d := DepreciationFor(model.DepreciationDecliningBalance, cost, 5, daysAgo(asOf, 500), asOf)
		assertDecimal(t, "600", d.NetBookValue)
		assertDecimal(t, "400", d.AccumulatedDepreciation)
	})

	t.Run("no completed years means no writedown", func(t *testing.T) {
		d := DepreciationFor(model.DepreciationDecliningBalance, cost, 5, daysAgo(asOf, 200), asOf)
		assertDecimal(t, "1000", d.NetBookValue)
		assert.True(t, d.AccumulatedDepreciation.IsZero())
	})
}

func TestAssetDepreciationRoundsToCents(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	asset := &model.Asset{
		PurchasePrice:      decimal.NewFromInt(1000),
		EconomicLife:       5,
		DateOfPurchase:     daysAgo(asOf, 730),
		DepreciationMethod: model.DepreciationStraightLine,
	}

	// 730 days is just under two years, so slightly less than 400 has
	// accumulated.
	d := AssetDepreciation(asset, asOf)
	assert.Equal(t, "600.27", d.NetBookValue.StringFixed(2))
	assert.Equal(t, "399.73", d.AccumulatedDepreciation.StringFixed(2))
}

func TestEconomicLifeFor(t *testing.T) {
	assert.Equal(t, 8, model.EconomicLifeFor("Furniture"))
	assert.Equal(t, 3, model.EconomicLifeFor("ICT"))
	assert.Equal(t, 5, model.EconomicLifeFor("Land and Buildings"))
}
