package repository

import (
	"context"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// assetPreloads are the relations loaded with every asset read; list rows and
// exports need the same related names as the detail view.
var assetPreloads = []string{"MajorCategory", "MinorCategory", "Location", "Department", "Supplier", "Employee"}

// AssetFilter narrows asset listings and exports. Nil / zero fields are
// ignored; Disposed is a tri-state so callers can ask for active assets,
// disposed assets, or both.
type AssetFilter struct {
	Search             string
	Status             string
	Condition          string
	AssetType          string
	DepreciationMethod string
	MajorCategoryID    *uuid.UUID
	MinorCategoryID    *uuid.UUID
	DepartmentID       *uuid.UUID
	LocationID         *uuid.UUID
	SupplierID         *uuid.UUID
	EmployeeID         *uuid.UUID
	Disposed           *bool
	PurchasedFrom      *time.Time
	PurchasedTo        *time.Time
}

type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByCode(ctx context.Context, code string) (*model.Asset, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Asset, error)
	List(ctx context.Context, filter AssetFilter, page, limit int) ([]model.Asset, int64, error)
	ListAll(ctx context.Context, filter AssetFilter) ([]model.Asset, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Asset, error)
	CountByMajorCategory(ctx context.Context, majorCategoryID uuid.UUID) (int64, error)
	CountByMinorCategory(ctx context.Context, minorCategoryID uuid.UUID) (int64, error)
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
	CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	return GetDB(ctx, r.db).Create(asset).Error
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) error {
	return GetDB(ctx, r.db).Save(asset).Error
}

// Delete removes the asset row permanently. Issued asset codes stay consumed:
// the code sequence only moves forward, so a deleted asset's code is never
// handed out again.
func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Asset{}).Error
}

func (r *assetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	db := GetDB(ctx, r.db)
	for _, p := range assetPreloads {
		db = db.Preload(p)
	}
	if err := db.First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) FindByCode(ctx context.Context, code string) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).Where("asset_code = ?", code).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) FindByBarcode(ctx context.Context, barcode string) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).Where("barcode = ?", barcode).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, filter AssetFilter, page, limit int) ([]model.Asset, int64, error) {
	var assets []model.Asset
	var total int64

	db := GetDB(ctx, r.db)
	if err := r.filtered(db.Model(&model.Asset{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := r.filtered(db.Model(&model.Asset{}), filter)
	for _, p := range assetPreloads {
		fetchQuery = fetchQuery.Preload(p)
	}
	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

func (r *assetRepository) ListAll(ctx context.Context, filter AssetFilter) ([]model.Asset, error) {
	var assets []model.Asset
	query := r.filtered(GetDB(ctx, r.db).Model(&model.Asset{}), filter)
	for _, p := range assetPreloads {
		query = query.Preload(p)
	}
	if err := query.Order("asset_code ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Asset, error) {
	var assets []model.Asset
	db := GetDB(ctx, r.db)
	for _, p := range assetPreloads {
		db = db.Preload(p)
	}
	if err := db.Where("id IN ?", ids).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) CountByMajorCategory(ctx context.Context, majorCategoryID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "major_category_id = ?", majorCategoryID)
}

func (r *assetRepository) CountByMinorCategory(ctx context.Context, minorCategoryID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "minor_category_id = ?", minorCategoryID)
}

func (r *assetRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "department_id = ?", departmentID)
}

func (r *assetRepository) CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "location_id = ?", locationID)
}

func (r *assetRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "supplier_id = ?", supplierID)
}

func (r *assetRepository) countWhere(ctx context.Context, cond string, arg interface{}) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Asset{}).Where(cond, arg).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *assetRepository) filtered(query *gorm.DB, f AssetFilter) *gorm.DB {
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("asset_code ILIKE ? OR barcode ILIKE ? OR description ILIKE ? OR serial_number ILIKE ?",
			like, like, like, like)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Condition != "" {
		query = query.Where("condition = ?", f.Condition)
	}
	if f.AssetType != "" {
		query = query.Where("asset_type = ?", f.AssetType)
	}
	if f.DepreciationMethod != "" {
		query = query.Where("depreciation_method = ?", f.DepreciationMethod)
	}
	if f.MajorCategoryID != nil {
		query = query.Where("major_category_id = ?", *f.MajorCategoryID)
	}
	if f.MinorCategoryID != nil {
		query = query.Where("minor_category_id = ?", *f.MinorCategoryID)
	}
	if f.DepartmentID != nil {
		query = query.Where("department_id = ?", *f.DepartmentID)
	}
	if f.LocationID != nil {
		query = query.Where("location_id = ?", *f.LocationID)
	}
	if f.SupplierID != nil {
		query = query.Where("supplier_id = ?", *f.SupplierID)
	}
	if f.EmployeeID != nil {
		query = query.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Disposed != nil {
		query = query.Where("is_disposed = ?", *f.Disposed)
	}
	if f.PurchasedFrom != nil {
		query = query.Where("date_of_purchase >= ?", *f.PurchasedFrom)
	}
	if f.PurchasedTo != nil {
		query = query.Where("date_of_purchase <= ?", *f.PurchasedTo)
	}
	return query
}
