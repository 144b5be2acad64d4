package service

import (
	"context"
	"sort"
	"time"

	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/shopspring/decimal"
)

// SummaryBucket aggregates the assets filed under one reference value.
type SummaryBucket struct {
	Name         string          `json:"name"`
	Count        int64           `json:"count"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	NetBookValue decimal.Decimal `json:"net_book_value"`
}

type ReferenceCounts struct {
	MajorCategories int64 `json:"major_categories"`
	MinorCategories int64 `json:"minor_categories"`
	Departments     int64 `json:"departments"`
	Employees       int64 `json:"employees"`
	Locations       int64 `json:"locations"`
	Suppliers       int64 `json:"suppliers"`
}

type SummaryResponse struct {
	TotalAssets                  int64            `json:"total_assets"`
	DisposedAssets               int64            `json:"disposed_assets"`
	TotalPurchaseCost            decimal.Decimal  `json:"total_purchase_cost"`
	TotalNetBookValue            decimal.Decimal  `json:"total_net_book_value"`
	TotalAccumulatedDepreciation decimal.Decimal  `json:"total_accumulated_depreciation"`
	AssetsByStatus               map[string]int64 `json:"assets_by_status"`
	AssetsByCondition            map[string]int64 `json:"assets_by_condition"`
	AssetsByMajorCategory        []SummaryBucket  `json:"assets_by_major_category"`
	AssetsByMinorCategory        []SummaryBucket  `json:"assets_by_minor_category"`
	AssetsByDepartment           []SummaryBucket  `json:"assets_by_department"`
	AssetsByLocation             []SummaryBucket  `json:"assets_by_location"`
	AssetsBySupplier             []SummaryBucket  `json:"assets_by_supplier"`
	References                   ReferenceCounts  `json:"references"`
	GeneratedAt                  string           `json:"generated_at"`
}

type SummaryService interface {
	GetSummary(ctx context.Context) (*SummaryResponse, error)
}

type summaryService struct {
	assetRepo      repository.AssetRepository
	majorRepo      repository.MajorCategoryRepository
	minorRepo      repository.MinorCategoryRepository
	departmentRepo repository.DepartmentRepository
	employeeRepo   repository.EmployeeRepository
	locationRepo   repository.LocationRepository
	supplierRepo   repository.SupplierRepository
	now            func() time.Time
}

func NewSummaryService(
	assetRepo repository.AssetRepository,
	majorRepo repository.MajorCategoryRepository,
	minorRepo repository.MinorCategoryRepository,
	departmentRepo repository.DepartmentRepository,
	employeeRepo repository.EmployeeRepository,
	locationRepo repository.LocationRepository,
	supplierRepo repository.SupplierRepository,
) SummaryService {
	return &summaryService{
		assetRepo:      assetRepo,
		majorRepo:      majorRepo,
		minorRepo:      minorRepo,
		departmentRepo: departmentRepo,
		employeeRepo:   employeeRepo,
		locationRepo:   locationRepo,
		supplierRepo:   supplierRepo,
		now:            time.Now,
	}
}

// GetSummary walks every asset once and derives all the dashboard figures in
// memory. Net book value is computed, not stored, so totals are always
// consistent with the valuation date.
func (s *summaryService) GetSummary(ctx context.Context) (*SummaryResponse, error) {
	assets, err := s.assetRepo.ListAll(ctx, repository.AssetFilter{})
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	res := &SummaryResponse{
		AssetsByStatus:    map[string]int64{},
		AssetsByCondition: map[string]int64{},
		GeneratedAt:       asOf.UTC().Format(time.RFC3339),
	}

	majorBuckets := map[string]*SummaryBucket{}
	minorBuckets := map[string]*SummaryBucket{}
	departmentBuckets := map[string]*SummaryBucket{}
	locationBuckets := map[string]*SummaryBucket{}
	supplierBuckets := map[string]*SummaryBucket{}

	for i := range assets {
		asset := &assets[i]
		if asset.IsDisposed {
			res.DisposedAssets++
			continue
		}

		res.TotalAssets++
		res.AssetsByStatus[asset.Status]++
		res.AssetsByCondition[asset.Condition]++

		depreciation := AssetDepreciation(asset, asOf)
		res.TotalPurchaseCost = res.TotalPurchaseCost.Add(asset.PurchasePrice)
		res.TotalNetBookValue = res.TotalNetBookValue.Add(depreciation.NetBookValue)
		res.TotalAccumulatedDepreciation = res.TotalAccumulatedDepreciation.Add(depreciation.AccumulatedDepreciation)

		accumulate(majorBuckets, asset.MajorCategory.Name, asset.PurchasePrice, depreciation.NetBookValue)
		accumulate(minorBuckets, asset.MinorCategory.Name, asset.PurchasePrice, depreciation.NetBookValue)
		accumulate(departmentBuckets, asset.Department.Name, asset.PurchasePrice, depreciation.NetBookValue)
		accumulate(locationBuckets, asset.Location.Name, asset.PurchasePrice, depreciation.NetBookValue)
		accumulate(supplierBuckets, asset.Supplier.Name, asset.PurchasePrice, depreciation.NetBookValue)
	}

	res.TotalPurchaseCost = res.TotalPurchaseCost.Round(2)
	res.TotalNetBookValue = res.TotalNetBookValue.Round(2)
	res.TotalAccumulatedDepreciation = res.TotalAccumulatedDepreciation.Round(2)
	res.AssetsByMajorCategory = sortBuckets(majorBuckets)
	res.AssetsByMinorCategory = sortBuckets(minorBuckets)
	res.AssetsByDepartment = sortBuckets(departmentBuckets)
	res.AssetsByLocation = sortBuckets(locationBuckets)
	res.AssetsBySupplier = sortBuckets(supplierBuckets)

	if res.References.MajorCategories, err = s.majorRepo.Count(ctx); err != nil {
		return nil, err
	}
	if res.References.MinorCategories, err = s.minorRepo.Count(ctx); err != nil {
		return nil, err
	}
	if res.References.Departments, err = s.departmentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if res.References.Employees, err = s.employeeRepo.Count(ctx); err != nil {
		return nil, err
	}
	if res.References.Locations, err = s.locationRepo.Count(ctx); err != nil {
		return nil, err
	}
	if res.References.Suppliers, err = s.supplierRepo.Count(ctx); err != nil {
		return nil, err
	}

	return res, nil
}

func accumulate(buckets map[string]*SummaryBucket, name string, cost, nbv decimal.Decimal) {
	bucket, ok := buckets[name]
	if !ok {
		bucket = &SummaryBucket{Name: name}
		buckets[name] = bucket
	}
	bucket.Count++
	bucket.PurchaseCost = bucket.PurchaseCost.Add(cost)
	bucket.NetBookValue = bucket.NetBookValue.Add(nbv)
}

func sortBuckets(buckets map[string]*SummaryBucket) []SummaryBucket {
	res := make([]SummaryBucket, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.PurchaseCost = bucket.PurchaseCost.Round(2)
		bucket.NetBookValue = bucket.NetBookValue.Round(2)
		res = append(res, *bucket)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}
