package service

import (
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/shopspring/decimal"
)

// daysPerYear converts whole days in service to fractional years, keeping
// leap years in step over long holding periods.
var daysPerYear = decimal.NewFromFloat(365.25)

// Depreciation is the derived valuation of an asset at a point in time.
// Neither figure is stored; both are recomputed on every read so they are
// always current.
type Depreciation struct {
	NetBookValue            decimal.Decimal `json:"net_book_value"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
}

// YearsInService returns the fractional years between purchase and asOf,
// measured in whole days.
func YearsInService(purchased, asOf time.Time) decimal.Decimal {
	days := int64(asOf.Sub(purchased).Hours() / 24)
	return decimal.NewFromInt(days).Div(daysPerYear)
}

// DepreciationFor computes the current book value and accumulated
// depreciation for an asset. Straight-line depreciates continuously on
// fractional years; declining balance (200%) writes down once per completed
// year. Book value never drops below zero and accumulated depreciation never
// exceeds cost. An asset purchased today, or with no time in service, is
// still worth its full cost.
func DepreciationFor(method string, cost decimal.Decimal, economicLife int, purchased, asOf time.Time) Depreciation {
	years := YearsInService(purchased, asOf)

	if years.Sign() <= 0 {
		return Depreciation{NetBookValue: cost, AccumulatedDepreciation: decimal.Zero}
	}
	if economicLife <= 0 {
		// No meaningful life to spread cost over; treat as written off.
		return Depreciation{NetBookValue: decimal.Zero, AccumulatedDepreciation: cost}
	}

	life := decimal.NewFromInt(int64(economicLife))

	switch method {
	case model.DepreciationDecliningBalance:
		rate := decimal.NewFromInt(2).Div(life)
		accumulated := decimal.Zero
		netValue := cost
		for year := int64(0); year < years.IntPart(); year++ {
			writedown := netValue.Mul(rate)
			accumulated = accumulated.Add(writedown)
			netValue = netValue.Sub(writedown)
		}
		if netValue.Sign() < 0 {
			netValue = decimal.Zero
		}
		return Depreciation{NetBookValue: netValue, AccumulatedDepreciation: accumulated}

	default: // STRAIGHT_LINE
		annual := cost.Div(life)
		netValue := cost.Sub(years.Mul(annual))
		if netValue.Sign() < 0 {
			netValue = decimal.Zero
		}
		accumulated := annual.Mul(years)
		if accumulated.GreaterThan(cost) {
			accumulated = cost
		}
		return Depreciation{NetBookValue: netValue, AccumulatedDepreciation: accumulated}
	}
}

// AssetDepreciation applies DepreciationFor to an asset row, rounding to the
// two decimal places the rest of the money fields carry.
func AssetDepreciation(asset *model.Asset, asOf time.Time) Depreciation {
	d := DepreciationFor(asset.DepreciationMethod, asset.PurchasePrice, asset.EconomicLife, asset.DateOfPurchase, asOf)
	return Depreciation{
		NetBookValue:            d.NetBookValue.Round(2),
		AccumulatedDepreciation: d.AccumulatedDepreciation.Round(2),
	}
}
