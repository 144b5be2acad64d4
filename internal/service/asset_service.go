package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"
	"github.com/Kakazablone/AssetDome/internal/spreadsheet"
	ws "github.com/Kakazablone/AssetDome/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxAssetCodeAttempts bounds the create retry loop. A retry only happens
// when two transactions race to the same generated code or barcode; after the
// attempts run out the caller gets a conflict.
const maxAssetCodeAttempts = 3

const dateLayout = "2006-01-02"

// Enum validators
var validAssetTypes = map[string]bool{
	model.AssetTypeMovable:   true,
	model.AssetTypeImmovable: true,
}

var validConditions = map[string]bool{
	model.ConditionNew:      true,
	model.ConditionVeryGood: true,
	model.ConditionGood:     true,
	model.ConditionFair:     true,
	model.ConditionFaulty:   true,
	model.ConditionBroken:   true,
	model.ConditionObsolete: true,
}

var validStatuses = map[string]bool{
	model.StatusActive:   true,
	model.StatusInactive: true,
}

var validDepreciationMethods = map[string]bool{
	model.DepreciationStraightLine:     true,
	model.DepreciationDecliningBalance: true,
}

// DTOs

type CreateAssetRequest struct {
	Barcode             string           `json:"barcode" binding:"required"`
	RFID                *string          `json:"rfid"`
	Description         string           `json:"description" binding:"required"`
	SerialNumber        *string          `json:"serial_number"`
	ModelNumber         *string          `json:"model_number"`
	AssetType           string           `json:"asset_type" binding:"required,oneof=MOVABLE IMMOVABLE"`
	MajorCategoryID     string           `json:"major_category_id" binding:"required,uuid"`
	MinorCategoryID     string           `json:"minor_category_id" binding:"required,uuid"`
	LocationID          string           `json:"location_id" binding:"required,uuid"`
	DepartmentID        string           `json:"department_id" binding:"required,uuid"`
	SupplierID          string           `json:"supplier_id" binding:"required,uuid"`
	EmployeeID          *string          `json:"employee_id" binding:"omitempty,uuid"`
	PurchasePrice       decimal.Decimal  `json:"purchase_price"`
	PriceIsPerUnit      bool             `json:"price_is_per_unit"`
	Units               int              `json:"units" binding:"omitempty,min=0"`
	RevaluedAmount      *decimal.Decimal `json:"revalued_amount"`
	DateOfPurchase      string           `json:"date_of_purchase" binding:"required"`
	DatePlacedInService string           `json:"date_placed_in_service" binding:"required"`
	Condition           string           `json:"condition" binding:"required"`
	Status              string           `json:"status"`
	DepreciationMethod  string           `json:"depreciation_method"`
}

// UpdateAssetRequest uses pointers so absent fields stay untouched. Asset
// codes are immutable once issued, so there is no asset_code field. Barcode
// is a protected field and only superusers may send it.
type UpdateAssetRequest struct {
	Barcode             *string          `json:"barcode"`
	RFID                *string          `json:"rfid"`
	Description         *string          `json:"description"`
	SerialNumber        *string          `json:"serial_number"`
	ModelNumber         *string          `json:"model_number"`
	AssetType           *string          `json:"asset_type"`
	MajorCategoryID     *string          `json:"major_category_id"`
	MinorCategoryID     *string          `json:"minor_category_id"`
	LocationID          *string          `json:"location_id"`
	DepartmentID        *string          `json:"department_id"`
	SupplierID          *string          `json:"supplier_id"`
	EmployeeID          *string          `json:"employee_id"` // empty string unassigns
	PurchasePrice       *decimal.Decimal `json:"purchase_price"`
	PriceIsPerUnit      *bool            `json:"price_is_per_unit"`
	Units               *int             `json:"units"`
	RevaluedAmount      *decimal.Decimal `json:"revalued_amount"`
	DateOfPurchase      *string          `json:"date_of_purchase"`
	DatePlacedInService *string          `json:"date_placed_in_service"`
	Condition           *string          `json:"condition"`
	Status              *string          `json:"status"`
	DepreciationMethod  *string          `json:"depreciation_method"`
}

type DisposeAssetRequest struct {
	IsDisposed *bool `json:"is_disposed" binding:"required"`
}

// AssetListQuery carries raw query string filters; the service parses and
// validates them. The json tags let report jobs snapshot the filters they
// were created with.
type AssetListQuery struct {
	Search             string `json:"search,omitempty"`
	Status             string `json:"status,omitempty"`
	Condition          string `json:"condition,omitempty"`
	AssetType          string `json:"asset_type,omitempty"`
	DepreciationMethod string `json:"depreciation_method,omitempty"`
	MajorCategoryID    string `json:"major_category_id,omitempty"`
	MinorCategoryID    string `json:"minor_category_id,omitempty"`
	DepartmentID       string `json:"department_id,omitempty"`
	LocationID         string `json:"location_id,omitempty"`
	SupplierID         string `json:"supplier_id,omitempty"`
	EmployeeID         string `json:"employee_id,omitempty"`
	Disposed           string `json:"disposed,omitempty"` // "", "true", "false", "all"
	PurchasedFrom      string `json:"purchased_from,omitempty"`
	PurchasedTo        string `json:"purchased_to,omitempty"`
}

type RefSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AssetResponse struct {
	ID                      string           `json:"id"`
	AssetCode               string           `json:"asset_code"`
	Barcode                 string           `json:"barcode"`
	RFID                    *string          `json:"rfid"`
	Description             string           `json:"description"`
	SerialNumber            *string          `json:"serial_number"`
	ModelNumber             *string          `json:"model_number"`
	AssetType               string           `json:"asset_type"`
	MajorCategory           RefSummary       `json:"major_category"`
	MinorCategory           RefSummary       `json:"minor_category"`
	Location                RefSummary       `json:"location"`
	Department              RefSummary       `json:"department"`
	Supplier                RefSummary       `json:"supplier"`
	Employee                *RefSummary      `json:"employee"`
	EconomicLife            int              `json:"economic_life"`
	PurchasePrice           decimal.Decimal  `json:"purchase_price"`
	PriceIsPerUnit          bool             `json:"price_is_per_unit"`
	Units                   int              `json:"units"`
	RevaluedAmount          *decimal.Decimal `json:"revalued_amount"`
	DateOfPurchase          string           `json:"date_of_purchase"`
	DatePlacedInService     string           `json:"date_placed_in_service"`
	Condition               string           `json:"condition"`
	Status                  string           `json:"status"`
	DepreciationMethod      string           `json:"depreciation_method"`
	NetBookValue            decimal.Decimal  `json:"net_book_value"`
	AccumulatedDepreciation decimal.Decimal  `json:"accumulated_depreciation"`
	IsDisposed              bool             `json:"is_disposed"`
	DisposedAt              *time.Time       `json:"disposed_at"`
	UndisposedAt            *time.Time       `json:"undisposed_at"`
	CreatedAt               string           `json:"created_at"`
	UpdatedAt               string           `json:"updated_at"`
}

type AssetService interface {
	GetAssets(ctx context.Context, query AssetListQuery, page, limit int) ([]AssetResponse, int64, error)
	GetAssetByID(ctx context.Context, id string) (*AssetResponse, error)
	GetAssetsByIDs(ctx context.Context, ids []string) ([]AssetResponse, error)
	ExportRecords(ctx context.Context, query AssetListQuery) ([]spreadsheet.AssetRecord, error)
	CreateAsset(ctx context.Context, actor Actor, req CreateAssetRequest) (*AssetResponse, error)
	UpdateAsset(ctx context.Context, actor Actor, id string, req UpdateAssetRequest) (*AssetResponse, error)
	DeleteAsset(ctx context.Context, actor Actor, id string) error
	SetDisposed(ctx context.Context, actor Actor, id string, disposed bool) (*AssetResponse, error)
	ImportAssets(ctx context.Context, actor Actor, records []spreadsheet.AssetRecord) (*ImportResult, error)
}

type assetService struct {
	assetRepo      repository.AssetRepository
	majorRepo      repository.MajorCategoryRepository
	minorRepo      repository.MinorCategoryRepository
	locationRepo   repository.LocationRepository
	departmentRepo repository.DepartmentRepository
	supplierRepo   repository.SupplierRepository
	employeeRepo   repository.EmployeeRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	codes          CodeGenerator
	hub            *ws.Hub
	now            func() time.Time
}

func NewAssetService(
	assetRepo repository.AssetRepository,
	majorRepo repository.MajorCategoryRepository,
	minorRepo repository.MinorCategoryRepository,
	locationRepo repository.LocationRepository,
	departmentRepo repository.DepartmentRepository,
	supplierRepo repository.SupplierRepository,
	employeeRepo repository.EmployeeRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	codes CodeGenerator,
	hub *ws.Hub,
) AssetService {
	return &assetService{
		assetRepo:      assetRepo,
		majorRepo:      majorRepo,
		minorRepo:      minorRepo,
		locationRepo:   locationRepo,
		departmentRepo: departmentRepo,
		supplierRepo:   supplierRepo,
		employeeRepo:   employeeRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		codes:          codes,
		hub:            hub,
		now:            time.Now,
	}
}

func (s *assetService) GetAssets(ctx context.Context, query AssetListQuery, page, limit int) ([]AssetResponse, int64, error) {
	filter, err := buildAssetFilter(query)
	if err != nil {
		return nil, 0, err
	}

	assets, total, err := s.assetRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return s.toResponses(assets), total, nil
}

func (s *assetService) GetAssetByID(ctx context.Context, id string) (*AssetResponse, error) {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid asset id", ErrValidation)
	}

	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	res := s.toResponse(asset)
	return &res, nil
}

func (s *assetService) GetAssetsByIDs(ctx context.Context, ids []string) ([]AssetResponse, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if assetID, err := uuid.Parse(id); err == nil {
			parsed = append(parsed, assetID)
		}
	}
	if len(parsed) == 0 {
		return []AssetResponse{}, nil
	}

	assets, err := s.assetRepo.ListByIDs(ctx, parsed)
	if err != nil {
		return nil, err
	}

	// Keep the caller's ordering; ListByIDs returns rows in storage order.
	byID := make(map[string]model.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID.String()] = a
	}
	ordered := make([]AssetResponse, 0, len(assets))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, s.toResponse(&a))
		}
	}
	return ordered, nil
}

// ExportRecords returns every asset matching the query as spreadsheet rows,
// ordered by asset code.
func (s *assetService) ExportRecords(ctx context.Context, query AssetListQuery) ([]spreadsheet.AssetRecord, error) {
	filter, err := buildAssetFilter(query)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	records := make([]spreadsheet.AssetRecord, 0, len(assets))
	for i := range assets {
		records = append(records, s.toRecord(&assets[i]))
	}
	return records, nil
}

func (s *assetService) CreateAsset(ctx context.Context, actor Actor, req CreateAssetRequest) (*AssetResponse, error) {
	if req.Status == "" {
		req.Status = model.StatusActive
	}
	if req.DepreciationMethod == "" {
		req.DepreciationMethod = model.DepreciationStraightLine
	}
	if err := s.validateEnums(req.AssetType, req.Condition, req.Status, req.DepreciationMethod); err != nil {
		return nil, err
	}

	purchased, placed, err := s.parseAssetDates(req.DateOfPurchase, req.DatePlacedInService)
	if err != nil {
		return nil, err
	}

	price, err := effectivePrice(req.PurchasePrice, req.PriceIsPerUnit, req.Units)
	if err != nil {
		return nil, err
	}

	refs, err := s.resolveReferences(ctx, req.MajorCategoryID, req.MinorCategoryID, req.LocationID, req.DepartmentID, req.SupplierID, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	if _, err := s.assetRepo.FindByBarcode(ctx, req.Barcode); err == nil {
		return nil, fmt.Errorf("barcode %q already in use: %w", req.Barcode, ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var actorID *uuid.UUID
	if parsed, err := uuid.Parse(actor.ID); err == nil {
		actorID = &parsed
	}

	var created *model.Asset
	for attempt := 0; attempt < maxAssetCodeAttempts; attempt++ {
		asset := &model.Asset{
			Barcode:             req.Barcode,
			RFID:                req.RFID,
			Description:         req.Description,
			SerialNumber:        req.SerialNumber,
			ModelNumber:         req.ModelNumber,
			AssetType:           req.AssetType,
			MajorCategoryID:     refs.major.ID,
			MinorCategoryID:     refs.minor.ID,
			LocationID:          refs.location.ID,
			DepartmentID:        refs.department.ID,
			SupplierID:          refs.supplier.ID,
			EconomicLife:        model.EconomicLifeFor(refs.major.Name),
			PurchasePrice:       price,
			PriceIsPerUnit:      req.PriceIsPerUnit,
			Units:               req.Units,
			RevaluedAmount:      req.RevaluedAmount,
			DateOfPurchase:      purchased,
			DatePlacedInService: placed,
			Condition:           req.Condition,
			Status:              req.Status,
			DepreciationMethod:  req.DepreciationMethod,
			CreatedByID:         actorID,
			UpdatedByID:         actorID,
		}
		if refs.employee != nil {
			asset.EmployeeID = &refs.employee.ID
		}

		err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			code, err := s.codes.NextAssetCode(txCtx)
			if err != nil {
				return err
			}
			asset.AssetCode = code

			if err := s.assetRepo.Create(txCtx, asset); err != nil {
				return fmt.Errorf("failed to create asset: %w", err)
			}

			entry := newAuditEntry(actor, model.ActionCreateAsset, model.EntityAsset, asset.ID.String(), assetLabel(asset), req)
			if err := s.auditRepo.Log(txCtx, entry); err != nil {
				return fmt.Errorf("failed to write audit log: %w", err)
			}
			return nil
		})

		if err == nil {
			created = asset
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}

	if created == nil {
		return nil, fmt.Errorf("could not assign a unique asset code after %d attempts: %w", maxAssetCodeAttempts, ErrConflict)
	}

	s.hub.BroadcastEvent(ws.EventAssetCreated, map[string]string{
		"id":          created.ID.String(),
		"asset_code":  created.AssetCode,
		"description": created.Description,
	})

	return s.GetAssetByID(ctx, created.ID.String())
}

func (s *assetService) UpdateAsset(ctx context.Context, actor Actor, id string, req UpdateAssetRequest) (*AssetResponse, error) {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid asset id", ErrValidation)
	}

	if req.Barcode != nil && !actor.Superuser {
		return nil, fmt.Errorf("only a superuser may change the barcode: %w", ErrForbidden)
	}

	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	changes := map[string]interface{}{}
	apply := func(field string, from, to interface{}) {
		changes[field] = map[string]interface{}{"from": from, "to": to}
	}

	if req.Barcode != nil && *req.Barcode != asset.Barcode {
		if other, err := s.assetRepo.FindByBarcode(ctx, *req.Barcode); err == nil && other.ID != asset.ID {
			return nil, fmt.Errorf("barcode %q already in use: %w", *req.Barcode, ErrConflict)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
		apply("barcode", asset.Barcode, *req.Barcode)
		asset.Barcode = *req.Barcode
	}
	if req.RFID != nil {
		apply("rfid", asset.RFID, *req.RFID)
		asset.RFID = req.RFID
	}
	if req.Description != nil && *req.Description != asset.Description {
		apply("description", asset.Description, *req.Description)
		asset.Description = *req.Description
	}
	if req.SerialNumber != nil {
		apply("serial_number", asset.SerialNumber, *req.SerialNumber)
		asset.SerialNumber = req.SerialNumber
	}
	if req.ModelNumber != nil {
		apply("model_number", asset.ModelNumber, *req.ModelNumber)
		asset.ModelNumber = req.ModelNumber
	}
	if req.AssetType != nil && *req.AssetType != asset.AssetType {
		if !validAssetTypes[*req.AssetType] {
			return nil, fmt.Errorf("%w: asset_type must be MOVABLE or IMMOVABLE", ErrValidation)
		}
		apply("asset_type", asset.AssetType, *req.AssetType)
		asset.AssetType = *req.AssetType
	}
	if req.Condition != nil && *req.Condition != asset.Condition {
		if !validConditions[*req.Condition] {
			return nil, fmt.Errorf("%w: invalid condition", ErrValidation)
		}
		apply("condition", asset.Condition, *req.Condition)
		asset.Condition = *req.Condition
	}
	if req.Status != nil && *req.Status != asset.Status {
		if !validStatuses[*req.Status] {
			return nil, fmt.Errorf("%w: status must be ACTIVE or INACTIVE", ErrValidation)
		}
		apply("status", asset.Status, *req.Status)
		asset.Status = *req.Status
	}
	if req.DepreciationMethod != nil && *req.DepreciationMethod != asset.DepreciationMethod {
		if !validDepreciationMethods[*req.DepreciationMethod] {
			return nil, fmt.Errorf("%w: invalid depreciation_method", ErrValidation)
		}
		apply("depreciation_method", asset.DepreciationMethod, *req.DepreciationMethod)
		asset.DepreciationMethod = *req.DepreciationMethod
	}

	if err := s.applyReferenceChanges(ctx, asset, req, apply); err != nil {
		return nil, err
	}
	if err := s.applyDateChanges(asset, req, apply); err != nil {
		return nil, err
	}
	if err := s.applyPriceChanges(asset, req, apply); err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		res := s.toResponse(asset)
		return &res, nil
	}

	if parsed, err := uuid.Parse(actor.ID); err == nil {
		asset.UpdatedByID = &parsed
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assetRepo.Update(txCtx, asset); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("barcode %q already in use: %w", asset.Barcode, ErrConflict)
			}
			return fmt.Errorf("failed to update asset: %w", err)
		}

		entry := newAuditEntry(actor, model.ActionUpdateAsset, model.EntityAsset, asset.ID.String(), assetLabel(asset), changes)
		if err := s.auditRepo.Log(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastEvent(ws.EventAssetUpdated, map[string]string{
		"id":         asset.ID.String(),
		"asset_code": asset.AssetCode,
	})

	return s.GetAssetByID(ctx, asset.ID.String())
}

func (s *assetService) DeleteAsset(ctx context.Context, actor Actor, id string) error {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid asset id", ErrValidation)
	}

	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("asset not found: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assetRepo.Delete(txCtx, assetID); err != nil {
			return fmt.Errorf("failed to delete asset: %w", err)
		}

		entry := newAuditEntry(actor, model.ActionDeleteAsset, model.EntityAsset, asset.ID.String(), assetLabel(asset), asset)
		if err := s.auditRepo.Log(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.BroadcastEvent(ws.EventAssetDeleted, map[string]string{
		"id":         asset.ID.String(),
		"asset_code": asset.AssetCode,
	})
	return nil
}

// SetDisposed moves an asset in or out of the disposed state. The row is
// locked for the transition so two concurrent disposals cannot both pass the
// state check.
func (s *assetService) SetDisposed(ctx context.Context, actor Actor, id string, disposed bool) (*AssetResponse, error) {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid asset id", ErrValidation)
	}

	var actorID *uuid.UUID
	if parsed, err := uuid.Parse(actor.ID); err == nil {
		actorID = &parsed
	}

	var updated *model.Asset
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		asset, err := s.assetRepo.FindByIDForUpdate(txCtx, assetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("asset not found: %w", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if asset.IsDisposed == disposed {
			if disposed {
				return fmt.Errorf("asset %s is already disposed: %w", asset.AssetCode, ErrConflict)
			}
			return fmt.Errorf("asset %s is not disposed: %w", asset.AssetCode, ErrConflict)
		}

		now := s.now()
		action := model.ActionDisposeAsset
		asset.IsDisposed = disposed
		if disposed {
			asset.DisposedAt = &now
			asset.DisposedBy = actorID
		} else {
			action = model.ActionUndisposeAsset
			asset.UndisposedAt = &now
			asset.UndisposedBy = actorID
		}
		asset.UpdatedByID = actorID

		if err := s.assetRepo.Update(txCtx, asset); err != nil {
			return fmt.Errorf("failed to update asset: %w", err)
		}

		entry := newAuditEntry(actor, action, model.EntityAsset, asset.ID.String(), assetLabel(asset),
			map[string]interface{}{"is_disposed": map[string]bool{"from": !disposed, "to": disposed}})
		if err := s.auditRepo.Log(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := ws.EventAssetDisposed
	if !disposed {
		event = ws.EventAssetUndisposed
	}
	s.hub.BroadcastEvent(event, map[string]string{
		"id":         updated.ID.String(),
		"asset_code": updated.AssetCode,
	})

	return s.GetAssetByID(ctx, updated.ID.String())
}

// Helpers

type resolvedRefs struct {
	major      *model.MajorCategory
	minor      *model.MinorCategory
	location   *model.Location
	department *model.Department
	supplier   *model.Supplier
	employee   *model.Employee
}

func (s *assetService) resolveReferences(ctx context.Context, majorID, minorID, locationID, departmentID, supplierID string, employeeID *string) (*resolvedRefs, error) {
	refs := &resolvedRefs{}

	parse := func(field, raw string) (uuid.UUID, error) {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: invalid %s", ErrValidation, field)
		}
		return parsed, nil
	}

	majorUUID, err := parse("major_category_id", majorID)
	if err != nil {
		return nil, err
	}
	if refs.major, err = s.majorRepo.FindByID(ctx, majorUUID); err != nil {
		return nil, refError("major category", err)
	}

	minorUUID, err := parse("minor_category_id", minorID)
	if err != nil {
		return nil, err
	}
	if refs.minor, err = s.minorRepo.FindByID(ctx, minorUUID); err != nil {
		return nil, refError("minor category", err)
	}
	if refs.minor.MajorCategoryID != refs.major.ID {
		return nil, fmt.Errorf("%w: minor category %q does not belong to major category %q", ErrValidation, refs.minor.Name, refs.major.Name)
	}

	locationUUID, err := parse("location_id", locationID)
	if err != nil {
		return nil, err
	}
	if refs.location, err = s.locationRepo.FindByID(ctx, locationUUID); err != nil {
		return nil, refError("location", err)
	}

	departmentUUID, err := parse("department_id", departmentID)
	if err != nil {
		return nil, err
	}
	if refs.department, err = s.departmentRepo.FindByID(ctx, departmentUUID); err != nil {
		return nil, refError("department", err)
	}

	supplierUUID, err := parse("supplier_id", supplierID)
	if err != nil {
		return nil, err
	}
	if refs.supplier, err = s.supplierRepo.FindByID(ctx, supplierUUID); err != nil {
		return nil, refError("supplier", err)
	}

	if employeeID != nil && *employeeID != "" {
		employeeUUID, err := parse("employee_id", *employeeID)
		if err != nil {
			return nil, err
		}
		if refs.employee, err = s.employeeRepo.FindByID(ctx, employeeUUID); err != nil {
			return nil, refError("employee", err)
		}
	}

	return refs, nil
}

func refError(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s not found", ErrValidation, entity)
	}
	return fmt.Errorf("database error: %w", err)
}

func (s *assetService) applyReferenceChanges(ctx context.Context, asset *model.Asset, req UpdateAssetRequest, apply func(string, interface{}, interface{})) error {
	if req.MajorCategoryID != nil || req.MinorCategoryID != nil {
		majorID := asset.MajorCategoryID.String()
		if req.MajorCategoryID != nil {
			majorID = *req.MajorCategoryID
		}
		minorID := asset.MinorCategoryID.String()
		if req.MinorCategoryID != nil {
			minorID = *req.MinorCategoryID
		}

		majorUUID, err := uuid.Parse(majorID)
		if err != nil {
			return fmt.Errorf("%w: invalid major_category_id", ErrValidation)
		}
		minorUUID, err := uuid.Parse(minorID)
		if err != nil {
			return fmt.Errorf("%w: invalid minor_category_id", ErrValidation)
		}

		major, err := s.majorRepo.FindByID(ctx, majorUUID)
		if err != nil {
			return refError("major category", err)
		}
		minor, err := s.minorRepo.FindByID(ctx, minorUUID)
		if err != nil {
			return refError("minor category", err)
		}
		if minor.MajorCategoryID != major.ID {
			return fmt.Errorf("%w: minor category %q does not belong to major category %q", ErrValidation, minor.Name, major.Name)
		}

		if asset.MajorCategoryID != major.ID {
			apply("major_category_id", asset.MajorCategoryID.String(), major.ID.String())
			asset.MajorCategoryID = major.ID
			asset.MajorCategory = *major
			// Economic life follows the major category.
			if life := model.EconomicLifeFor(major.Name); life != asset.EconomicLife {
				apply("economic_life", asset.EconomicLife, life)
				asset.EconomicLife = life
			}
		}
		if asset.MinorCategoryID != minor.ID {
			apply("minor_category_id", asset.MinorCategoryID.String(), minor.ID.String())
			asset.MinorCategoryID = minor.ID
			asset.MinorCategory = *minor
		}
	}

	if req.LocationID != nil {
		locationUUID, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return fmt.Errorf("%w: invalid location_id", ErrValidation)
		}
		if locationUUID != asset.LocationID {
			location, err := s.locationRepo.FindByID(ctx, locationUUID)
			if err != nil {
				return refError("location", err)
			}
			apply("location_id", asset.LocationID.String(), location.ID.String())
			asset.LocationID = location.ID
			asset.Location = *location
		}
	}

	if req.DepartmentID != nil {
		departmentUUID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return fmt.Errorf("%w: invalid department_id", ErrValidation)
		}
		if departmentUUID != asset.DepartmentID {
			department, err := s.departmentRepo.FindByID(ctx, departmentUUID)
			if err != nil {
				return refError("department", err)
			}
			apply("department_id", asset.DepartmentID.String(), department.ID.String())
			asset.DepartmentID = department.ID
			asset.Department = *department
		}
	}

	if req.SupplierID != nil {
		supplierUUID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return fmt.Errorf("%w: invalid supplier_id", ErrValidation)
		}
		if supplierUUID != asset.SupplierID {
			supplier, err := s.supplierRepo.FindByID(ctx, supplierUUID)
			if err != nil {
				return refError("supplier", err)
			}
			apply("supplier_id", asset.SupplierID.String(), supplier.ID.String())
			asset.SupplierID = supplier.ID
			asset.Supplier = *supplier
		}
	}

	if req.EmployeeID != nil {
		if *req.EmployeeID == "" {
			if asset.EmployeeID != nil {
				apply("employee_id", asset.EmployeeID.String(), nil)
				asset.EmployeeID = nil
				asset.Employee = nil
			}
		} else {
			employeeUUID, err := uuid.Parse(*req.EmployeeID)
			if err != nil {
				return fmt.Errorf("%w: invalid employee_id", ErrValidation)
			}
			if asset.EmployeeID == nil || *asset.EmployeeID != employeeUUID {
				employee, err := s.employeeRepo.FindByID(ctx, employeeUUID)
				if err != nil {
					return refError("employee", err)
				}
				from := interface{}(nil)
				if asset.EmployeeID != nil {
					from = asset.EmployeeID.String()
				}
				apply("employee_id", from, employee.ID.String())
				asset.EmployeeID = &employee.ID
				asset.Employee = employee
			}
		}
	}

	return nil
}

func (s *assetService) applyDateChanges(asset *model.Asset, req UpdateAssetRequest, apply func(string, interface{}, interface{})) error {
	if req.DateOfPurchase != nil {
		purchased, err := s.parseDate("date_of_purchase", *req.DateOfPurchase)
		if err != nil {
			return err
		}
		if !purchased.Equal(asset.DateOfPurchase) {
			apply("date_of_purchase", asset.DateOfPurchase.Format(dateLayout), purchased.Format(dateLayout))
			asset.DateOfPurchase = purchased
		}
	}
	if req.DatePlacedInService != nil {
		placed, err := s.parseDate("date_placed_in_service", *req.DatePlacedInService)
		if err != nil {
			return err
		}
		if !placed.Equal(asset.DatePlacedInService) {
			apply("date_placed_in_service", asset.DatePlacedInService.Format(dateLayout), placed.Format(dateLayout))
			asset.DatePlacedInService = placed
		}
	}
	return nil
}

func (s *assetService) applyPriceChanges(asset *model.Asset, req UpdateAssetRequest, apply func(string, interface{}, interface{})) error {
	if req.Units != nil {
		if *req.Units < 0 {
			return fmt.Errorf("%w: units must not be negative", ErrValidation)
		}
		if *req.Units != asset.Units {
			apply("units", asset.Units, *req.Units)
			asset.Units = *req.Units
		}
	}
	if req.PriceIsPerUnit != nil && *req.PriceIsPerUnit != asset.PriceIsPerUnit {
		if *req.PriceIsPerUnit && req.PurchasePrice == nil {
			return fmt.Errorf("%w: purchase_price is required when price_is_per_unit is set", ErrValidation)
		}
		apply("price_is_per_unit", asset.PriceIsPerUnit, *req.PriceIsPerUnit)
		asset.PriceIsPerUnit = *req.PriceIsPerUnit
	}
	if req.PurchasePrice != nil {
		price, err := effectivePrice(*req.PurchasePrice, asset.PriceIsPerUnit, asset.Units)
		if err != nil {
			return err
		}
		if !price.Equal(asset.PurchasePrice) {
			apply("purchase_price", asset.PurchasePrice, price)
			asset.PurchasePrice = price
		}
	}
	if req.RevaluedAmount != nil {
		apply("revalued_amount", asset.RevaluedAmount, *req.RevaluedAmount)
		asset.RevaluedAmount = req.RevaluedAmount
	}
	return nil
}

// effectivePrice applies the per-unit convention: when the submitted price is
// per unit, the stored purchase price is price times units.
func effectivePrice(price decimal.Decimal, perUnit bool, units int) (decimal.Decimal, error) {
	if price.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: purchase_price must not be negative", ErrValidation)
	}
	if perUnit {
		if units <= 0 {
			return decimal.Zero, fmt.Errorf("%w: units must be positive when price_is_per_unit is set", ErrValidation)
		}
		return price.Mul(decimal.NewFromInt(int64(units))), nil
	}
	return price, nil
}

func (s *assetService) validateEnums(assetType, condition, status, method string) error {
	if !validAssetTypes[assetType] {
		return fmt.Errorf("%w: asset_type must be MOVABLE or IMMOVABLE", ErrValidation)
	}
	if !validConditions[condition] {
		return fmt.Errorf("%w: invalid condition", ErrValidation)
	}
	if !validStatuses[status] {
		return fmt.Errorf("%w: status must be ACTIVE or INACTIVE", ErrValidation)
	}
	if !validDepreciationMethods[method] {
		return fmt.Errorf("%w: invalid depreciation_method", ErrValidation)
	}
	return nil
}

func (s *assetService) parseDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be formatted YYYY-MM-DD", ErrValidation, field)
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.After(today) {
		return time.Time{}, fmt.Errorf("%w: %s cannot be in the future", ErrValidation, field)
	}
	return parsed, nil
}

func (s *assetService) parseAssetDates(purchase, placed string) (time.Time, time.Time, error) {
	purchased, err := s.parseDate("date_of_purchase", purchase)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	inService, err := s.parseDate("date_placed_in_service", placed)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return purchased, inService, nil
}

func buildAssetFilter(query AssetListQuery) (repository.AssetFilter, error) {
	filter := repository.AssetFilter{
		Search:             query.Search,
		Status:             query.Status,
		Condition:          query.Condition,
		AssetType:          query.AssetType,
		DepreciationMethod: query.DepreciationMethod,
	}

	parseID := func(field, raw string) (*uuid.UUID, error) {
		if raw == "" {
			return nil, nil
		}
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s", ErrValidation, field)
		}
		return &parsed, nil
	}

	var err error
	if filter.MajorCategoryID, err = parseID("major_category_id", query.MajorCategoryID); err != nil {
		return filter, err
	}
	if filter.MinorCategoryID, err = parseID("minor_category_id", query.MinorCategoryID); err != nil {
		return filter, err
	}
	if filter.DepartmentID, err = parseID("department_id", query.DepartmentID); err != nil {
		return filter, err
	}
	if filter.LocationID, err = parseID("location_id", query.LocationID); err != nil {
		return filter, err
	}
	if filter.SupplierID, err = parseID("supplier_id", query.SupplierID); err != nil {
		return filter, err
	}
	if filter.EmployeeID, err = parseID("employee_id", query.EmployeeID); err != nil {
		return filter, err
	}

	// Listings default to live assets; disposed rows only appear when asked
	// for explicitly.
	switch query.Disposed {
	case "", "false":
		disposed := false
		filter.Disposed = &disposed
	case "true":
		disposed := true
		filter.Disposed = &disposed
	case "all":
	default:
		return filter, fmt.Errorf("%w: disposed must be true, false, or all", ErrValidation)
	}

	if query.PurchasedFrom != "" {
		from, err := time.Parse(dateLayout, query.PurchasedFrom)
		if err != nil {
			return filter, fmt.Errorf("%w: purchased_from must be formatted YYYY-MM-DD", ErrValidation)
		}
		filter.PurchasedFrom = &from
	}
	if query.PurchasedTo != "" {
		to, err := time.Parse(dateLayout, query.PurchasedTo)
		if err != nil {
			return filter, fmt.Errorf("%w: purchased_to must be formatted YYYY-MM-DD", ErrValidation)
		}
		filter.PurchasedTo = &to
	}

	return filter, nil
}

func assetLabel(asset *model.Asset) string {
	return asset.AssetCode + " - " + asset.Description
}

func (s *assetService) toResponses(assets []model.Asset) []AssetResponse {
	res := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		res = append(res, s.toResponse(&assets[i]))
	}
	return res
}

func (s *assetService) toResponse(asset *model.Asset) AssetResponse {
	depreciation := AssetDepreciation(asset, s.now())

	res := AssetResponse{
		ID:                      asset.ID.String(),
		AssetCode:               asset.AssetCode,
		Barcode:                 asset.Barcode,
		RFID:                    asset.RFID,
		Description:             asset.Description,
		SerialNumber:            asset.SerialNumber,
		ModelNumber:             asset.ModelNumber,
		AssetType:               asset.AssetType,
		MajorCategory:           RefSummary{ID: asset.MajorCategoryID.String(), Name: asset.MajorCategory.Name},
		MinorCategory:           RefSummary{ID: asset.MinorCategoryID.String(), Name: asset.MinorCategory.Name},
		Location:                RefSummary{ID: asset.LocationID.String(), Name: asset.Location.Name},
		Department:              RefSummary{ID: asset.DepartmentID.String(), Name: asset.Department.Name},
		Supplier:                RefSummary{ID: asset.SupplierID.String(), Name: asset.Supplier.Name},
		EconomicLife:            asset.EconomicLife,
		PurchasePrice:           asset.PurchasePrice,
		PriceIsPerUnit:          asset.PriceIsPerUnit,
		Units:                   asset.Units,
		RevaluedAmount:          asset.RevaluedAmount,
		DateOfPurchase:          asset.DateOfPurchase.Format(dateLayout),
		DatePlacedInService:     asset.DatePlacedInService.Format(dateLayout),
		Condition:               asset.Condition,
		Status:                  asset.Status,
		DepreciationMethod:      asset.DepreciationMethod,
		NetBookValue:            depreciation.NetBookValue,
		AccumulatedDepreciation: depreciation.AccumulatedDepreciation,
		IsDisposed:              asset.IsDisposed,
		DisposedAt:              asset.DisposedAt,
		UndisposedAt:            asset.UndisposedAt,
		CreatedAt:               asset.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:               asset.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if asset.EmployeeID != nil && asset.Employee != nil {
		res.Employee = &RefSummary{ID: asset.EmployeeID.String(), Name: asset.Employee.FullName()}
	}
	return res
}

// toRecord flattens an asset into an export row. Reference columns carry
// names and the employee column carries the employee number, matching what
// the import path resolves.
func (s *assetService) toRecord(asset *model.Asset) spreadsheet.AssetRecord {
	depreciation := AssetDepreciation(asset, s.now())

	record := spreadsheet.AssetRecord{
		AssetCode:               asset.AssetCode,
		Barcode:                 asset.Barcode,
		Description:             asset.Description,
		AssetType:               asset.AssetType,
		MajorCategory:           asset.MajorCategory.Name,
		MinorCategory:           asset.MinorCategory.Name,
		Location:                asset.Location.Name,
		Department:              asset.Department.Name,
		Supplier:                asset.Supplier.Name,
		EconomicLife:            strconv.Itoa(asset.EconomicLife),
		PurchasePrice:           asset.PurchasePrice.StringFixed(2),
		Units:                   strconv.Itoa(asset.Units),
		DateOfPurchase:          asset.DateOfPurchase.Format(dateLayout),
		DatePlacedInService:     asset.DatePlacedInService.Format(dateLayout),
		Condition:               asset.Condition,
		Status:                  asset.Status,
		DepreciationMethod:      asset.DepreciationMethod,
		NetBookValue:            depreciation.NetBookValue.StringFixed(2),
		AccumulatedDepreciation: depreciation.AccumulatedDepreciation.StringFixed(2),
		IsDisposed:              strconv.FormatBool(asset.IsDisposed),
	}
	if asset.RFID != nil {
		record.RFID = *asset.RFID
	}
	if asset.SerialNumber != nil {
		record.SerialNumber = *asset.SerialNumber
	}
	if asset.ModelNumber != nil {
		record.ModelNumber = *asset.ModelNumber
	}
	if asset.Employee != nil {
		record.EmployeeNumber = asset.Employee.EmployeeNumber
	}
	return record
}
