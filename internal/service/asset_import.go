package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/spreadsheet"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ImportConflict struct {
	Line      int    `json:"line"`
	AssetCode string `json:"asset_code"`
	Reason    string `json:"reason"`
}

type ImportResult struct {
	Created   int              `json:"created"`
	Updated   int              `json:"updated"`
	Conflicts []ImportConflict `json:"conflicts"`
}

// ImportAssets applies spreadsheet rows one at a time. A row with a blank or
// DEFAULT asset_code creates a new asset with a freshly generated code; a row
// whose code matches an existing asset updates it; a row naming a code that
// does not exist is a conflict. Rows that fail to resolve or validate are
// reported as conflicts without stopping the rest of the file.
func (s *assetService) ImportAssets(ctx context.Context, actor Actor, records []spreadsheet.AssetRecord) (*ImportResult, error) {
	result := &ImportResult{Conflicts: []ImportConflict{}}

	for _, record := range records {
		if err := s.importRecord(ctx, actor, record, result); err != nil {
			result.Conflicts = append(result.Conflicts, ImportConflict{
				Line:      record.Line,
				AssetCode: record.AssetCode,
				Reason:    err.Error(),
			})
		}
	}

	entry := newAuditEntry(actor, model.ActionImportAssets, model.EntityAsset, "", "spreadsheet import", result)
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to write audit log: %w", err)
	}

	return result, nil
}

func (s *assetService) importRecord(ctx context.Context, actor Actor, record spreadsheet.AssetRecord, result *ImportResult) error {
	refs, err := s.resolveReferenceNames(ctx, record)
	if err != nil {
		return err
	}

	units := 0
	if record.Units != "" {
		units, err = strconv.Atoi(record.Units)
		if err != nil || units < 0 {
			return fmt.Errorf("%w: units must be a non-negative integer", ErrValidation)
		}
	}

	price := decimal.Zero
	if record.PurchasePrice != "" {
		price, err = decimal.NewFromString(record.PurchasePrice)
		if err != nil {
			return fmt.Errorf("%w: invalid purchase_price %q", ErrValidation, record.PurchasePrice)
		}
	}

	// DEFAULT is the placeholder exporters write for assets that have not
	// been assigned a code yet; it never matches a stored asset.
	if record.AssetCode != "" && record.AssetCode != "DEFAULT" {
		existing, err := s.assetRepo.FindByCode(ctx, record.AssetCode)
		if err == nil {
			return s.importUpdate(ctx, actor, existing.ID.String(), record, refs, price, units, result)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no asset with code %q", ErrConflict, record.AssetCode)
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.importCreate(ctx, actor, record, refs, price, units, result)
}

func (s *assetService) importCreate(ctx context.Context, actor Actor, record spreadsheet.AssetRecord, refs *resolvedRefs, price decimal.Decimal, units int, result *ImportResult) error {
	req := CreateAssetRequest{
		Barcode:             record.Barcode,
		Description:         record.Description,
		AssetType:           record.AssetType,
		MajorCategoryID:     refs.major.ID.String(),
		MinorCategoryID:     refs.minor.ID.String(),
		LocationID:          refs.location.ID.String(),
		DepartmentID:        refs.department.ID.String(),
		SupplierID:          refs.supplier.ID.String(),
		PurchasePrice:       price,
		Units:               units,
		DateOfPurchase:      record.DateOfPurchase,
		DatePlacedInService: record.DatePlacedInService,
		Condition:           record.Condition,
		Status:              record.Status,
		DepreciationMethod:  record.DepreciationMethod,
	}
	if record.RFID != "" {
		rfid := record.RFID
		req.RFID = &rfid
	}
	if record.SerialNumber != "" {
		serial := record.SerialNumber
		req.SerialNumber = &serial
	}
	if record.ModelNumber != "" {
		modelNumber := record.ModelNumber
		req.ModelNumber = &modelNumber
	}
	if refs.employee != nil {
		id := refs.employee.ID.String()
		req.EmployeeID = &id
	}

	if _, err := s.CreateAsset(ctx, actor, req); err != nil {
		return err
	}
	result.Created++
	return nil
}

func (s *assetService) importUpdate(ctx context.Context, actor Actor, id string, record spreadsheet.AssetRecord, refs *resolvedRefs, price decimal.Decimal, units int, result *ImportResult) error {
	req := UpdateAssetRequest{}

	set := func(dst **string, value string) {
		if value != "" {
			v := value
			*dst = &v
		}
	}

	set(&req.Description, record.Description)
	set(&req.RFID, record.RFID)
	set(&req.SerialNumber, record.SerialNumber)
	set(&req.ModelNumber, record.ModelNumber)
	set(&req.AssetType, record.AssetType)
	set(&req.Condition, record.Condition)
	set(&req.Status, record.Status)
	set(&req.DepreciationMethod, record.DepreciationMethod)
	set(&req.DateOfPurchase, record.DateOfPurchase)
	set(&req.DatePlacedInService, record.DatePlacedInService)

	majorID := refs.major.ID.String()
	req.MajorCategoryID = &majorID
	minorID := refs.minor.ID.String()
	req.MinorCategoryID = &minorID
	locationID := refs.location.ID.String()
	req.LocationID = &locationID
	departmentID := refs.department.ID.String()
	req.DepartmentID = &departmentID
	supplierID := refs.supplier.ID.String()
	req.SupplierID = &supplierID
	if refs.employee != nil {
		employeeID := refs.employee.ID.String()
		req.EmployeeID = &employeeID
	}

	if record.PurchasePrice != "" {
		req.PurchasePrice = &price
	}
	if record.Units != "" {
		req.Units = &units
	}

	// Barcode stays a protected field on the import path too. A non superuser
	// row that tries to change it becomes a conflict instead of silently
	// dropping the column.
	if record.Barcode != "" {
		current, err := s.GetAssetByID(ctx, id)
		if err != nil {
			return err
		}
		if record.Barcode != current.Barcode {
			if !actor.Superuser {
				return fmt.Errorf("changing a barcode requires a superuser: %w", ErrForbidden)
			}
			barcode := record.Barcode
			req.Barcode = &barcode
		}
	}

	if _, err := s.UpdateAsset(ctx, actor, id, req); err != nil {
		return err
	}
	result.Updated++
	return nil
}

func (s *assetService) resolveReferenceNames(ctx context.Context, record spreadsheet.AssetRecord) (*resolvedRefs, error) {
	refs := &resolvedRefs{}
	var err error

	if record.MajorCategory == "" {
		return nil, fmt.Errorf("%w: major_category is required", ErrValidation)
	}
	if refs.major, err = s.majorRepo.FindByName(ctx, record.MajorCategory); err != nil {
		return nil, nameError("major category", record.MajorCategory, err)
	}

	if record.MinorCategory == "" {
		return nil, fmt.Errorf("%w: minor_category is required", ErrValidation)
	}
	if refs.minor, err = s.minorRepo.FindByName(ctx, refs.major.ID, record.MinorCategory); err != nil {
		return nil, nameError("minor category", record.MinorCategory, err)
	}

	if record.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	if refs.location, err = s.locationRepo.FindByName(ctx, record.Location); err != nil {
		return nil, nameError("location", record.Location, err)
	}

	if record.Department == "" {
		return nil, fmt.Errorf("%w: department is required", ErrValidation)
	}
	if refs.department, err = s.departmentRepo.FindByName(ctx, record.Department); err != nil {
		return nil, nameError("department", record.Department, err)
	}

	if record.Supplier == "" {
		return nil, fmt.Errorf("%w: supplier is required", ErrValidation)
	}
	if refs.supplier, err = s.supplierRepo.FindByName(ctx, record.Supplier); err != nil {
		return nil, nameError("supplier", record.Supplier, err)
	}

	if record.EmployeeNumber != "" {
		if refs.employee, err = s.employeeRepo.FindByEmployeeNumber(ctx, record.EmployeeNumber); err != nil {
			return nil, nameError("employee", record.EmployeeNumber, err)
		}
	}

	return refs, nil
}

func nameError(entity, name string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: unknown %s %q", ErrValidation, entity, name)
	}
	return fmt.Errorf("database error: %w", err)
}
