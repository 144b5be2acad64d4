package service

import (
	"context"
	"testing"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSummaryServiceFixture(assets []model.Asset) *summaryService {
	assetRepo := &MockAssetRepository{
		ListAllFunc: func(ctx context.Context, filter repository.AssetFilter) ([]model.Asset, error) {
			return assets, nil
		},
	}
	count := func(n int64) func(ctx context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) { return n, nil }
	}

	svc := NewSummaryService(
		assetRepo,
		&MockMajorCategoryRepository{CountFunc: count(2)},
		&MockMinorCategoryRepository{CountFunc: count(3)},
		&MockDepartmentRepository{CountFunc: count(1)},
		&MockEmployeeRepository{CountFunc: count(4)},
		&MockLocationRepository{CountFunc: count(2)},
		&MockSupplierRepository{CountFunc: count(2)},
	).(*summaryService)
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC) }
	return svc
}

func summaryAsset(price int64, purchasedDaysAgo int) model.Asset {
	asOf := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	return model.Asset{
		PurchasePrice:      decimal.NewFromInt(price),
		EconomicLife:       5,
		DateOfPurchase:     asOf.AddDate(0, 0, -purchasedDaysAgo),
		DepreciationMethod: model.DepreciationStraightLine,
		Status:             model.StatusActive,
		Condition:          model.ConditionNew,
		MajorCategory:      model.MajorCategory{Name: "ICT"},
		MinorCategory:      model.MinorCategory{Name: "Laptops"},
		Department:         model.Department{Name: "Finance"},
		Location:           model.Location{Name: "Head Office"},
		Supplier:           model.Supplier{Name: "Artel Hardware"},
	}
}

func TestGetSummaryBucketsEveryReferenceAxis(t *testing.T) {
	// 1461 days into a five year life leaves a fifth of the cost.
	laptop := summaryAsset(1000, 1461)

	desk := summaryAsset(500, 0)
	desk.MajorCategory.Name = "Furniture"
	desk.MinorCategory.Name = "Desks"
	desk.Location.Name = "Warehouse"
	desk.Supplier.Name = "OfficePro"

	svc := newSummaryServiceFixture([]model.Asset{laptop, desk})

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalAssets)
	assertDecimal(t, "1500", summary.TotalPurchaseCost)
	assertDecimal(t, "700", summary.TotalNetBookValue)
	assertDecimal(t, "800", summary.TotalAccumulatedDepreciation)

	require.Len(t, summary.AssetsByMajorCategory, 2)
	assert.Equal(t, "Furniture", summary.AssetsByMajorCategory[0].Name, "buckets sort by name")

	require.Len(t, summary.AssetsByMinorCategory, 2)
	assert.Equal(t, "Desks", summary.AssetsByMinorCategory[0].Name)
	assertDecimal(t, "500", summary.AssetsByMinorCategory[0].NetBookValue)

	require.Len(t, summary.AssetsByDepartment, 1)
	assert.Equal(t, int64(2), summary.AssetsByDepartment[0].Count)
	assertDecimal(t, "1500", summary.AssetsByDepartment[0].PurchaseCost)

	require.Len(t, summary.AssetsByLocation, 2)

	require.Len(t, summary.AssetsBySupplier, 2)
	assert.Equal(t, "Artel Hardware", summary.AssetsBySupplier[0].Name)
	assertDecimal(t, "200", summary.AssetsBySupplier[0].NetBookValue)

	assert.Equal(t, int64(3), summary.References.MinorCategories)
	assert.Equal(t, int64(4), summary.References.Employees)
}

func TestGetSummaryExcludesDisposedFromValues(t *testing.T) {
	scrapped := summaryAsset(9999, 10)
	scrapped.IsDisposed = true

	svc := newSummaryServiceFixture([]model.Asset{summaryAsset(1000, 0), scrapped})

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.TotalAssets)
	assert.Equal(t, int64(1), summary.DisposedAssets)
	assertDecimal(t, "1000", summary.TotalPurchaseCost)
	assert.Len(t, summary.AssetsBySupplier, 1, "disposed assets stay out of every bucket")
	assert.Equal(t, int64(1), summary.AssetsByStatus[model.StatusActive])
}
