package service

import (
	"context"
	"testing"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"
	ws "github.com/Kakazablone/AssetDome/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testAdmin = Actor{
	ID:        uuid.NewString(),
	Name:      "Asha Odhiambo",
	Email:     "asha@example.com",
	Superuser: true,
}

var testClerk = Actor{
	ID:        uuid.NewString(),
	Name:      "Brian Kiprotich",
	Email:     "brian@example.com",
	Superuser: false,
}

// assetServiceFixture backs the asset service with an in-memory store and a
// seeded reference graph: one ICT/Laptops category pair, a location, a
// department, a supplier and an employee. Tests override individual mock
// funcs for the failure paths.
type assetServiceFixture struct {
	svc       *assetService
	assetRepo *MockAssetRepository
	audit     *MockAuditRepository

	major      model.MajorCategory
	otherMajor model.MajorCategory
	minor      model.MinorCategory
	location   model.Location
	department model.Department
	supplier   model.Supplier
	employee   model.Employee

	now   time.Time
	saved map[uuid.UUID]*model.Asset
	seq   int64
}

func newAssetServiceFixture() *assetServiceFixture {
	f := &assetServiceFixture{
		now:   time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
		saved: map[uuid.UUID]*model.Asset{},
	}

	f.major = model.MajorCategory{ID: uuid.New(), Name: "ICT"}
	f.otherMajor = model.MajorCategory{ID: uuid.New(), Name: "Furniture"}
	f.minor = model.MinorCategory{ID: uuid.New(), Name: "Laptops", MajorCategoryID: f.major.ID}
	f.location = model.Location{ID: uuid.New(), Name: "Head Office"}
	f.department = model.Department{ID: uuid.New(), Name: "Finance", DepartmentCode: "FIN"}
	f.supplier = model.Supplier{ID: uuid.New(), Name: "Artel Hardware", SupplierCode: "SUP001", Email: "sales@artel.example.com"}
	f.employee = model.Employee{
		ID:             uuid.New(),
		FirstName:      "Grace",
		LastName:       "Wanjiru",
		EmployeeNumber: "EMP-0042",
		Email:          "grace@example.com",
		DepartmentID:   f.department.ID,
	}

	f.assetRepo = &MockAssetRepository{
		CreateFunc: f.storeNew,
		UpdateFunc: f.storeUpdate,
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			delete(f.saved, id)
			return nil
		},
		FindByIDFunc:          f.findByID,
		FindByIDForUpdateFunc: f.findByID,
		FindByCodeFunc: func(ctx context.Context, code string) (*model.Asset, error) {
			for _, a := range f.saved {
				if a.AssetCode == code {
					return f.loaded(a), nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
		FindByBarcodeFunc: func(ctx context.Context, barcode string) (*model.Asset, error) {
			for _, a := range f.saved {
				if a.Barcode == barcode {
					return f.loaded(a), nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
		ListAllFunc: func(ctx context.Context, filter repository.AssetFilter) ([]model.Asset, error) {
			var out []model.Asset
			for _, a := range f.saved {
				out = append(out, *f.loaded(a))
			}
			return out, nil
		},
	}

	majorRepo := &MockMajorCategoryRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.MajorCategory, error) {
			for _, m := range []model.MajorCategory{f.major, f.otherMajor} {
				if m.ID == id {
					m := m
					return &m, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
		FindByNameFunc: func(ctx context.Context, name string) (*model.MajorCategory, error) {
			for _, m := range []model.MajorCategory{f.major, f.otherMajor} {
				if m.Name == name {
					m := m
					return &m, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	minorRepo := &MockMinorCategoryRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.MinorCategory, error) {
			if id == f.minor.ID {
				m := f.minor
				return &m, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		FindByNameFunc: func(ctx context.Context, majorCategoryID uuid.UUID, name string) (*model.MinorCategory, error) {
			if majorCategoryID == f.minor.MajorCategoryID && name == f.minor.Name {
				m := f.minor
				return &m, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	locationRepo := &MockLocationRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Location, error) {
			if id == f.location.ID {
				l := f.location
				return &l, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		FindByNameFunc: func(ctx context.Context, name string) (*model.Location, error) {
			if name == f.location.Name {
				l := f.location
				return &l, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	departmentRepo := &MockDepartmentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Department, error) {
			if id == f.department.ID {
				d := f.department
				return &d, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		FindByNameFunc: func(ctx context.Context, name string) (*model.Department, error) {
			if name == f.department.Name {
				d := f.department
				return &d, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	supplierRepo := &MockSupplierRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
			if id == f.supplier.ID {
				s := f.supplier
				return &s, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		FindByNameFunc: func(ctx context.Context, name string) (*model.Supplier, error) {
			if name == f.supplier.Name {
				s := f.supplier
				return &s, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	employeeRepo := &MockEmployeeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
			if id == f.employee.ID {
				e := f.employee
				return &e, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		FindByEmployeeNumberFunc: func(ctx context.Context, number string) (*model.Employee, error) {
			if number == f.employee.EmployeeNumber {
				e := f.employee
				return &e, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	f.audit = &MockAuditRepository{}
	sequences := &MockSequenceRepository{
		NextFunc: func(ctx context.Context, name string) (int64, error) {
			f.seq++
			return f.seq, nil
		},
	}

	hub := ws.NewHub()
	go hub.Run()

	svc := NewAssetService(
		f.assetRepo, majorRepo, minorRepo, locationRepo, departmentRepo,
		supplierRepo, employeeRepo, f.audit, &MockTransactionManager{},
		NewCodeGenerator(sequences), hub,
	)
	f.svc = svc.(*assetService)
	f.svc.now = func() time.Time { return f.now }

	return f
}

func (f *assetServiceFixture) storeNew(ctx context.Context, a *model.Asset) error {
	for _, existing := range f.saved {
		if existing.AssetCode == a.AssetCode || existing.Barcode == a.Barcode {
			return gorm.ErrDuplicatedKey
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = f.now
	a.UpdatedAt = f.now
	clone := *a
	f.saved[a.ID] = &clone
	return nil
}

func (f *assetServiceFixture) storeUpdate(ctx context.Context, a *model.Asset) error {
	if _, ok := f.saved[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	a.UpdatedAt = f.now
	clone := *a
	f.saved[a.ID] = &clone
	return nil
}

func (f *assetServiceFixture) findByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	a, ok := f.saved[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.loaded(a), nil
}

// loaded clones a stored row and attaches the seeded references the way the
// repository's Preloads would.
func (f *assetServiceFixture) loaded(a *model.Asset) *model.Asset {
	clone := *a
	if clone.MajorCategoryID == f.major.ID {
		clone.MajorCategory = f.major
	} else if clone.MajorCategoryID == f.otherMajor.ID {
		clone.MajorCategory = f.otherMajor
	}
	if clone.MinorCategoryID == f.minor.ID {
		clone.MinorCategory = f.minor
	}
	if clone.LocationID == f.location.ID {
		clone.Location = f.location
	}
	if clone.DepartmentID == f.department.ID {
		clone.Department = f.department
	}
	if clone.SupplierID == f.supplier.ID {
		clone.Supplier = f.supplier
	}
	if clone.EmployeeID != nil && *clone.EmployeeID == f.employee.ID {
		employee := f.employee
		clone.Employee = &employee
	}
	return &clone
}

func (f *assetServiceFixture) createRequest() CreateAssetRequest {
	employeeID := f.employee.ID.String()
	return CreateAssetRequest{
		Barcode:             "BC-1001",
		Description:         "Dell Latitude 5440",
		AssetType:           model.AssetTypeMovable,
		MajorCategoryID:     f.major.ID.String(),
		MinorCategoryID:     f.minor.ID.String(),
		LocationID:          f.location.ID.String(),
		DepartmentID:        f.department.ID.String(),
		SupplierID:          f.supplier.ID.String(),
		EmployeeID:          &employeeID,
		PurchasePrice:       decimal.NewFromInt(1200),
		Units:               1,
		DateOfPurchase:      "2024-05-10",
		DatePlacedInService: "2024-05-10",
		Condition:           model.ConditionNew,
	}
}

func (f *assetServiceFixture) seedAsset(t *testing.T) *AssetResponse {
	t.Helper()
	created, err := f.svc.CreateAsset(context.Background(), testAdmin, f.createRequest())
	require.NoError(t, err)
	return created
}

func auditActions(entries []model.AuditEntry) []string {
	actions := make([]string, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	return actions
}

func TestCreateAssetAssignsCodeAndDefaults(t *testing.T) {
	f := newAssetServiceFixture()

	created, err := f.svc.CreateAsset(context.Background(), testAdmin, f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, "AS000001", created.AssetCode)
	assert.Equal(t, model.StatusActive, created.Status)
	assert.Equal(t, model.DepreciationStraightLine, created.DepreciationMethod)
	assert.Equal(t, 3, created.EconomicLife, "economic life follows the ICT major category")
	assert.Equal(t, "ICT", created.MajorCategory.Name)
	assert.Equal(t, "Laptops", created.MinorCategory.Name)
	require.NotNil(t, created.Employee)
	assert.Equal(t, "Grace Wanjiru", created.Employee.Name)

	// Purchased today, so nothing has depreciated yet.
	assertDecimal(t, "1200", created.NetBookValue)
	assert.True(t, created.AccumulatedDepreciation.IsZero())

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionCreateAsset, entries[0].Action)
	assert.Equal(t, model.EntityAsset, entries[0].EntityType)
	assert.Equal(t, "AS000001 - Dell Latitude 5440", entries[0].EntityLabel)
	assert.Equal(t, testAdmin.Name, entries[0].ActorName)

	stored := f.saved[uuid.MustParse(created.ID)]
	require.NotNil(t, stored)
	require.NotNil(t, stored.CreatedByID)
	assert.Equal(t, testAdmin.ID, stored.CreatedByID.String())
}

func TestCreateAssetSecondCodeFollowsSequence(t *testing.T) {
	f := newAssetServiceFixture()
	f.seedAsset(t)

	req := f.createRequest()
	req.Barcode = "BC-1002"
	second, err := f.svc.CreateAsset(context.Background(), testAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, "AS000002", second.AssetCode)
}

func TestCreateAssetRejectsDuplicateBarcode(t *testing.T) {
	f := newAssetServiceFixture()
	f.seedAsset(t)

	_, err := f.svc.CreateAsset(context.Background(), testAdmin, f.createRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "BC-1001")
}

func TestCreateAssetRetriesCodeCollisions(t *testing.T) {
	f := newAssetServiceFixture()

	attempts := 0
	f.assetRepo.CreateFunc = func(ctx context.Context, a *model.Asset) error {
		attempts++
		if attempts <= 2 {
			return gorm.ErrDuplicatedKey
		}
		return f.storeNew(ctx, a)
	}

	created, err := f.svc.CreateAsset(context.Background(), testAdmin, f.createRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "AS000003", created.AssetCode, "each attempt draws a fresh code")
}

func TestCreateAssetGivesUpAfterThreeCollisions(t *testing.T) {
	f := newAssetServiceFixture()

	attempts := 0
	f.assetRepo.CreateFunc = func(ctx context.Context, a *model.Asset) error {
		attempts++
		return gorm.ErrDuplicatedKey
	}

	_, err := f.svc.CreateAsset(context.Background(), testAdmin, f.createRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "unique asset code")
}

func TestCreateAssetValidation(t *testing.T) {
	f := newAssetServiceFixture()

	tests := []struct {
		name    string
		mutate  func(req *CreateAssetRequest)
		wantMsg string
	}{
		{
			name: "per unit price requires units",
			mutate: func(req *CreateAssetRequest) {
				req.PriceIsPerUnit = true
				req.Units = 0
			},
			wantMsg: "units must be positive",
		},
		{
			name: "negative price",
			mutate: func(req *CreateAssetRequest) {
				req.PurchasePrice = decimal.NewFromInt(-5)
			},
			wantMsg: "must not be negative",
		},
		{
			name: "future purchase date",
			mutate: func(req *CreateAssetRequest) {
				req.DateOfPurchase = "2024-05-11"
			},
			wantMsg: "cannot be in the future",
		},
		{
			name: "malformed purchase date",
			mutate: func(req *CreateAssetRequest) {
				req.DateOfPurchase = "10/05/2024"
			},
			wantMsg: "YYYY-MM-DD",
		},
		{
			name: "unknown location",
			mutate: func(req *CreateAssetRequest) {
				req.LocationID = uuid.NewString()
			},
			wantMsg: "location not found",
		},
		{
			name: "minor category outside the major category",
			mutate: func(req *CreateAssetRequest) {
				req.MajorCategoryID = f.otherMajor.ID.String()
			},
			wantMsg: "does not belong to",
		},
		{
			name: "invalid condition",
			mutate: func(req *CreateAssetRequest) {
				req.Condition = "RUSTY"
			},
			wantMsg: "invalid condition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.createRequest()
			tt.mutate(&req)

			_, err := f.svc.CreateAsset(context.Background(), testAdmin, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreateAssetPerUnitPrice(t *testing.T) {
	f := newAssetServiceFixture()

	req := f.createRequest()
	req.PurchasePrice = decimal.NewFromInt(150)
	req.PriceIsPerUnit = true
	req.Units = 4

	created, err := f.svc.CreateAsset(context.Background(), testAdmin, req)
	require.NoError(t, err)
	assertDecimal(t, "600", created.PurchasePrice)
	assert.True(t, created.PriceIsPerUnit)
	assert.Equal(t, 4, created.Units)
}

func TestUpdateAssetBarcodeRequiresSuperuser(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)

	barcode := "BC-9999"
	_, err := f.svc.UpdateAsset(context.Background(), testClerk, created.ID, UpdateAssetRequest{Barcode: &barcode})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)

	// A superuser may change it.
	updated, err := f.svc.UpdateAsset(context.Background(), testAdmin, created.ID, UpdateAssetRequest{Barcode: &barcode})
	require.NoError(t, err)
	assert.Equal(t, "BC-9999", updated.Barcode)
}

func TestUpdateAssetAppliesChangesAndAudits(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)

	description := "Dell Latitude 5440 (rebuilt)"
	condition := model.ConditionGood
	updated, err := f.svc.UpdateAsset(context.Background(), testClerk, created.ID, UpdateAssetRequest{
		Description: &description,
		Condition:   &condition,
	})
	require.NoError(t, err)
	assert.Equal(t, description, updated.Description)
	assert.Equal(t, model.ConditionGood, updated.Condition)

	entries := f.audit.Entries()
	require.Len(t, entries, 2)
	last := entries[1]
	assert.Equal(t, model.ActionUpdateAsset, last.Action)
	assert.Contains(t, last.Changes, `"description"`)
	assert.Contains(t, last.Changes, "Dell Latitude 5440 (rebuilt)")
	assert.Contains(t, last.Changes, `"condition"`)

	stored := f.saved[uuid.MustParse(created.ID)]
	require.NotNil(t, stored.UpdatedByID)
	assert.Equal(t, testClerk.ID, stored.UpdatedByID.String())
}

func TestUpdateAssetNoChangesSkipsWrite(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)

	updates := 0
	f.assetRepo.UpdateFunc = func(ctx context.Context, a *model.Asset) error {
		updates++
		return f.storeUpdate(ctx, a)
	}

	sameDescription := created.Description
	_, err := f.svc.UpdateAsset(context.Background(), testClerk, created.ID, UpdateAssetRequest{
		Description: &sameDescription,
	})
	require.NoError(t, err)
	assert.Zero(t, updates, "identical values must not touch the row")
	assert.Len(t, f.audit.Entries(), 1, "only the creation is audited")
}

func TestUpdateAssetCategoryMoveAdjustsEconomicLife(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)

	// Move Laptops under Furniture so the pair matches again.
	f.minor.MajorCategoryID = f.otherMajor.ID

	majorID := f.otherMajor.ID.String()
	minorID := f.minor.ID.String()
	updated, err := f.svc.UpdateAsset(context.Background(), testClerk, created.ID, UpdateAssetRequest{
		MajorCategoryID: &majorID,
		MinorCategoryID: &minorID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Furniture", updated.MajorCategory.Name)
	assert.Equal(t, 8, updated.EconomicLife, "economic life follows the new major category")
}

func TestSetDisposedLifecycle(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)
	ctx := context.Background()

	disposed, err := f.svc.SetDisposed(ctx, testAdmin, created.ID, true)
	require.NoError(t, err)
	assert.True(t, disposed.IsDisposed)
	require.NotNil(t, disposed.DisposedAt)
	assert.True(t, disposed.DisposedAt.Equal(f.now))

	_, err = f.svc.SetDisposed(ctx, testAdmin, created.ID, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "already disposed")

	restored, err := f.svc.SetDisposed(ctx, testAdmin, created.ID, false)
	require.NoError(t, err)
	assert.False(t, restored.IsDisposed)
	require.NotNil(t, restored.UndisposedAt)

	_, err = f.svc.SetDisposed(ctx, testAdmin, created.ID, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "not disposed")

	assert.Equal(t, []string{
		model.ActionCreateAsset,
		model.ActionDisposeAsset,
		model.ActionUndisposeAsset,
	}, auditActions(f.audit.Entries()))
}

func TestDeleteAsset(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteAsset(ctx, testAdmin, created.ID))

	_, err := f.svc.GetAssetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	entries := f.audit.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, model.ActionDeleteAsset, entries[1].Action)

	err = f.svc.DeleteAsset(ctx, testAdmin, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAssetByIDRejectsMalformedID(t *testing.T) {
	f := newAssetServiceFixture()

	_, err := f.svc.GetAssetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetAssetsByIDsKeepsCallerOrder(t *testing.T) {
	f := newAssetServiceFixture()
	first := f.seedAsset(t)

	req := f.createRequest()
	req.Barcode = "BC-1002"
	second, err := f.svc.CreateAsset(context.Background(), testAdmin, req)
	require.NoError(t, err)

	f.assetRepo.ListByIDsFunc = func(ctx context.Context, ids []uuid.UUID) ([]model.Asset, error) {
		var out []model.Asset
		for _, a := range f.saved {
			out = append(out, *f.loaded(a))
		}
		return out, nil
	}

	got, err := f.svc.GetAssetsByIDs(context.Background(), []string{second.ID, "garbage", first.ID, uuid.NewString()})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	empty, err := f.svc.GetAssetsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestExportRecordsFlattensReferences(t *testing.T) {
	f := newAssetServiceFixture()
	f.seedAsset(t)

	records, err := f.svc.ExportRecords(context.Background(), AssetListQuery{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "AS000001", record.AssetCode)
	assert.Equal(t, "ICT", record.MajorCategory)
	assert.Equal(t, "Laptops", record.MinorCategory)
	assert.Equal(t, "EMP-0042", record.EmployeeNumber)
	assert.Equal(t, "1200.00", record.PurchasePrice)
	assert.Equal(t, "1200.00", record.NetBookValue)
	assert.Equal(t, "false", record.IsDisposed)
}

func TestBuildAssetFilterDisposed(t *testing.T) {
	t.Run("defaults to live assets", func(t *testing.T) {
		filter, err := buildAssetFilter(AssetListQuery{})
		require.NoError(t, err)
		require.NotNil(t, filter.Disposed)
		assert.False(t, *filter.Disposed)
	})

	t.Run("true narrows to disposed", func(t *testing.T) {
		filter, err := buildAssetFilter(AssetListQuery{Disposed: "true"})
		require.NoError(t, err)
		require.NotNil(t, filter.Disposed)
		assert.True(t, *filter.Disposed)
	})

	t.Run("all lifts the restriction", func(t *testing.T) {
		filter, err := buildAssetFilter(AssetListQuery{Disposed: "all"})
		require.NoError(t, err)
		assert.Nil(t, filter.Disposed)
	})

	t.Run("anything else is rejected", func(t *testing.T) {
		_, err := buildAssetFilter(AssetListQuery{Disposed: "maybe"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestBuildAssetFilterIDsAndDates(t *testing.T) {
	majorID := uuid.New()

	filter, err := buildAssetFilter(AssetListQuery{
		MajorCategoryID: majorID.String(),
		PurchasedFrom:   "2024-01-01",
		PurchasedTo:     "2024-12-31",
	})
	require.NoError(t, err)
	require.NotNil(t, filter.MajorCategoryID)
	assert.Equal(t, majorID, *filter.MajorCategoryID)
	require.NotNil(t, filter.PurchasedFrom)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *filter.PurchasedFrom)

	_, err = buildAssetFilter(AssetListQuery{MajorCategoryID: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = buildAssetFilter(AssetListQuery{PurchasedFrom: "01-01-2024"})
	assert.ErrorIs(t, err, ErrValidation)
}
