package service

import (
	"context"
	"sync"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Function-field mocks for the repository interfaces. Tests override only the
// calls they care about; unset fields behave like an empty database.

type MockAssetRepository struct {
	CreateFunc              func(ctx context.Context, asset *model.Asset) error
	UpdateFunc              func(ctx context.Context, asset *model.Asset) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByIDForUpdateFunc   func(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByCodeFunc          func(ctx context.Context, code string) (*model.Asset, error)
	FindByBarcodeFunc       func(ctx context.Context, barcode string) (*model.Asset, error)
	ListFunc                func(ctx context.Context, filter repository.AssetFilter, page, limit int) ([]model.Asset, int64, error)
	ListAllFunc             func(ctx context.Context, filter repository.AssetFilter) ([]model.Asset, error)
	ListByIDsFunc           func(ctx context.Context, ids []uuid.UUID) ([]model.Asset, error)
	CountByMajorCategoryFunc func(ctx context.Context, majorCategoryID uuid.UUID) (int64, error)
	CountByMinorCategoryFunc func(ctx context.Context, minorCategoryID uuid.UUID) (int64, error)
	CountByDepartmentFunc   func(ctx context.Context, departmentID uuid.UUID) (int64, error)
	CountByLocationFunc     func(ctx context.Context, locationID uuid.UUID) (int64, error)
	CountBySupplierFunc     func(ctx context.Context, supplierID uuid.UUID) (int64, error)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, asset)
	}
	return nil
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *model.Asset) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, asset)
	}
	return nil
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockAssetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	if m.FindByIDForUpdateFunc != nil {
		return m.FindByIDForUpdateFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockAssetRepository) FindByCode(ctx context.Context, code string) (*model.Asset, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockAssetRepository) FindByBarcode(ctx context.Context, barcode string) (*model.Asset, error) {
	if m.FindByBarcodeFunc != nil {
		return m.FindByBarcodeFunc(ctx, barcode)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockAssetRepository) List(ctx context.Context, filter repository.AssetFilter, page, limit int) ([]model.Asset, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page, limit)
	}
	return []model.Asset{}, 0, nil
}

func (m *MockAssetRepository) ListAll(ctx context.Context, filter repository.AssetFilter) ([]model.Asset, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, filter)
	}
	return []model.Asset{}, nil
}

func (m *MockAssetRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Asset, error) {
	if m.ListByIDsFunc != nil {
		return m.ListByIDsFunc(ctx, ids)
	}
	return []model.Asset{}, nil
}

func (m *MockAssetRepository) CountByMajorCategory(ctx context.Context, majorCategoryID uuid.UUID) (int64, error) {
	if m.CountByMajorCategoryFunc != nil {
		return m.CountByMajorCategoryFunc(ctx, majorCategoryID)
	}
	return 0, nil
}

func (m *MockAssetRepository) CountByMinorCategory(ctx context.Context, minorCategoryID uuid.UUID) (int64, error) {
	if m.CountByMinorCategoryFunc != nil {
		return m.CountByMinorCategoryFunc(ctx, minorCategoryID)
	}
	return 0, nil
}

func (m *MockAssetRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	if m.CountByDepartmentFunc != nil {
		return m.CountByDepartmentFunc(ctx, departmentID)
	}
	return 0, nil
}

func (m *MockAssetRepository) CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	if m.CountByLocationFunc != nil {
		return m.CountByLocationFunc(ctx, locationID)
	}
	return 0, nil
}

func (m *MockAssetRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	if m.CountBySupplierFunc != nil {
		return m.CountBySupplierFunc(ctx, supplierID)
	}
	return 0, nil
}

type MockMajorCategoryRepository struct {
	CreateFunc     func(ctx context.Context, category *model.MajorCategory) error
	UpdateFunc     func(ctx context.Context, category *model.MajorCategory) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*model.MajorCategory, error)
	FindByNameFunc func(ctx context.Context, name string) (*model.MajorCategory, error)
	ListFunc       func(ctx context.Context, search string, page, limit int) ([]model.MajorCategory, int64, error)
	CountFunc      func(ctx context.Context) (int64, error)
}

func (m *MockMajorCategoryRepository) Create(ctx context.Context, category *model.MajorCategory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return nil
}

func (m *MockMajorCategoryRepository) Update(ctx context.Context, category *model.MajorCategory) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	return nil
}

func (m *MockMajorCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockMajorCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MajorCategory, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMajorCategoryRepository) FindByName(ctx context.Context, name string) (*model.MajorCategory, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMajorCategoryRepository) List(ctx context.Context, search string, page, limit int) ([]model.MajorCategory, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search, page, limit)
	}
	return []model.MajorCategory{}, 0, nil
}

func (m *MockMajorCategoryRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

type MockMinorCategoryRepository struct {
	CreateFunc              func(ctx context.Context, category *model.MinorCategory) error
	UpdateFunc              func(ctx context.Context, category *model.MinorCategory) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*model.MinorCategory, error)
	FindByNameFunc          func(ctx context.Context, majorCategoryID uuid.UUID, name string) (*model.MinorCategory, error)
	ListFunc                func(ctx context.Context, majorCategoryID *uuid.UUID, search string, page, limit int) ([]model.MinorCategory, int64, error)
	CountByMajorCategoryFunc func(ctx context.Context, majorCategoryID uuid.UUID) (int64, error)
	CountFunc               func(ctx context.Context) (int64, error)
}

func (m *MockMinorCategoryRepository) Create(ctx context.Context, category *model.MinorCategory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return nil
}

func (m *MockMinorCategoryRepository) Update(ctx context.Context, category *model.MinorCategory) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	return nil
}

func (m *MockMinorCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockMinorCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MinorCategory, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMinorCategoryRepository) FindByName(ctx context.Context, majorCategoryID uuid.UUID, name string) (*model.MinorCategory, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, majorCategoryID, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMinorCategoryRepository) List(ctx context.Context, majorCategoryID *uuid.UUID, search string, page, limit int) ([]model.MinorCategory, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, majorCategoryID, search, page, limit)
	}
	return []model.MinorCategory{}, 0, nil
}

func (m *MockMinorCategoryRepository) CountByMajorCategory(ctx context.Context, majorCategoryID uuid.UUID) (int64, error) {
	if m.CountByMajorCategoryFunc != nil {
		return m.CountByMajorCategoryFunc(ctx, majorCategoryID)
	}
	return 0, nil
}

func (m *MockMinorCategoryRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

type MockLocationRepository struct {
	CreateFunc     func(ctx context.Context, location *model.Location) error
	UpdateFunc     func(ctx context.Context, location *model.Location) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*model.Location, error)
	FindByNameFunc func(ctx context.Context, name string) (*model.Location, error)
	ListFunc       func(ctx context.Context, search string, page, limit int) ([]model.Location, int64, error)
	CountFunc      func(ctx context.Context) (int64, error)
}

func (m *MockLocationRepository) Create(ctx context.Context, location *model.Location) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, location)
	}
	return nil
}

func (m *MockLocationRepository) Update(ctx context.Context, location *model.Location) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, location)
	}
	return nil
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockLocationRepository) FindByName(ctx context.Context, name string) (*model.Location, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockLocationRepository) List(ctx context.Context, search string, page, limit int) ([]model.Location, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search, page, limit)
	}
	return []model.Location{}, 0, nil
}

func (m *MockLocationRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

type MockDepartmentRepository struct {
	CreateFunc     func(ctx context.Context, department *model.Department) error
	UpdateFunc     func(ctx context.Context, department *model.Department) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*model.Department, error)
	FindByCodeFunc func(ctx context.Context, code string) (*model.Department, error)
	FindByNameFunc func(ctx context.Context, name string) (*model.Department, error)
	ListFunc       func(ctx context.Context, search string, page, limit int) ([]model.Department, int64, error)
	CountFunc      func(ctx context.Context) (int64, error)
}

func (m *MockDepartmentRepository) Create(ctx context.Context, department *model.Department) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, department)
	}
	return nil
}

func (m *MockDepartmentRepository) Update(ctx context.Context, department *model.Department) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, department)
	}
	return nil
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDepartmentRepository) FindByCode(ctx context.Context, code string) (*model.Department, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDepartmentRepository) FindByName(ctx context.Context, name string) (*model.Department, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDepartmentRepository) List(ctx context.Context, search string, page, limit int) ([]model.Department, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search, page, limit)
	}
	return []model.Department{}, 0, nil
}

func (m *MockDepartmentRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

type MockSupplierRepository struct {
	CreateFunc     func(ctx context.Context, supplier *model.Supplier) error
	UpdateFunc     func(ctx context.Context, supplier *model.Supplier) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	FindByCodeFunc func(ctx context.Context, code string) (*model.Supplier, error)
	FindByNameFunc func(ctx context.Context, name string) (*model.Supplier, error)
	ListFunc       func(ctx context.Context, search string, page, limit int) ([]model.Supplier, int64, error)
	CountFunc      func(ctx context.Context) (int64, error)
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *model.Supplier) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, supplier)
	}
	return nil
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *model.Supplier) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, supplier)
	}
	return nil
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockSupplierRepository) FindByCode(ctx context.Context, code string) (*model.Supplier, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) (*model.Supplier, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockSupplierRepository) List(ctx context.Context, search string, page, limit int) ([]model.Supplier, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search, page, limit)
	}
	return []model.Supplier{}, 0, nil
}

func (m *MockSupplierRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

type MockEmployeeRepository struct {
	CreateFunc               func(ctx context.Context, employee *model.Employee) error
	UpdateFunc               func(ctx context.Context, employee *model.Employee) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	FindByEmployeeNumberFunc func(ctx context.Context, number string) (*model.Employee, error)
	ListFunc                 func(ctx context.Context, departmentID *uuid.UUID, search string, page, limit int) ([]model.Employee, int64, error)
	CountByDepartmentFunc    func(ctx context.Context, departmentID uuid.UUID) (int64, error)
	CountFunc                func(ctx context.Context) (int64, error)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, employee)
	}
	return nil
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, employee)
	}
	return nil
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockEmployeeRepository) FindByEmployeeNumber(ctx context.Context, number string) (*model.Employee, error) {
	if m.FindByEmployeeNumberFunc != nil {
		return m.FindByEmployeeNumberFunc(ctx, number)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockEmployeeRepository) List(ctx context.Context, departmentID *uuid.UUID, search string, page, limit int) ([]model.Employee, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, departmentID, search, page, limit)
	}
	return []model.Employee{}, 0, nil
}

func (m *MockEmployeeRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	if m.CountByDepartmentFunc != nil {
		return m.CountByDepartmentFunc(ctx, departmentID)
	}
	return 0, nil
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockAuditRepository records every entry it is asked to log. Entries are
// copied under a lock so worker goroutines can log concurrently.
type MockAuditRepository struct {
	LogFunc  func(ctx context.Context, entry *model.AuditEntry) error
	ListFunc func(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]model.AuditEntry, int64, error)

	mu      sync.Mutex
	entries []model.AuditEntry
}

func (m *MockAuditRepository) Log(ctx context.Context, entry *model.AuditEntry) error {
	if m.LogFunc != nil {
		return m.LogFunc(ctx, entry)
	}
	m.mu.Lock()
	m.entries = append(m.entries, *entry)
	m.mu.Unlock()
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]model.AuditEntry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page, limit)
	}
	return []model.AuditEntry{}, 0, nil
}

func (m *MockAuditRepository) Entries() []model.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AuditEntry(nil), m.entries...)
}

type MockUserRepository struct {
	CreateFunc                     func(ctx context.Context, user *model.User) error
	GetByIDFunc                    func(ctx context.Context, id string) (*model.User, error)
	GetByEmailFunc                 func(ctx context.Context, email string) (*model.User, error)
	GetByUsernameFunc              func(ctx context.Context, username string) (*model.User, error)
	ListFunc                       func(ctx context.Context, page, limit int) ([]model.User, int64, error)
	UpdateFunc                     func(ctx context.Context, user *model.User) error
	DeleteFunc                     func(ctx context.Context, id string) error
	CreateRefreshTokenFunc         func(ctx context.Context, token *model.RefreshToken) error
	GetRefreshTokenFunc            func(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteRefreshTokenFunc         func(ctx context.Context, token string) error
	DeleteRefreshTokensForUserFunc func(ctx context.Context, userID string) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, limit)
	}
	return []model.User{}, 0, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	if m.CreateRefreshTokenFunc != nil {
		return m.CreateRefreshTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockUserRepository) GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	if m.GetRefreshTokenFunc != nil {
		return m.GetRefreshTokenFunc(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	if m.DeleteRefreshTokenFunc != nil {
		return m.DeleteRefreshTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockUserRepository) DeleteRefreshTokensForUser(ctx context.Context, userID string) error {
	if m.DeleteRefreshTokensForUserFunc != nil {
		return m.DeleteRefreshTokensForUserFunc(ctx, userID)
	}
	return nil
}

type MockReportRepository struct {
	CreateFunc      func(ctx context.Context, job *model.ReportJob) error
	UpdateFunc      func(ctx context.Context, job *model.ReportJob) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*model.ReportJob, error)
	ListFunc        func(ctx context.Context, requestedBy *uuid.UUID, status string, page, limit int) ([]model.ReportJob, int64, error)
	ListPendingFunc func(ctx context.Context) ([]model.ReportJob, error)
}

func (m *MockReportRepository) Create(ctx context.Context, job *model.ReportJob) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, job)
	}
	return nil
}

func (m *MockReportRepository) Update(ctx context.Context, job *model.ReportJob) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, job)
	}
	return nil
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReportJob, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockReportRepository) List(ctx context.Context, requestedBy *uuid.UUID, status string, page, limit int) ([]model.ReportJob, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, requestedBy, status, page, limit)
	}
	return []model.ReportJob{}, 0, nil
}

func (m *MockReportRepository) ListPending(ctx context.Context) ([]model.ReportJob, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return []model.ReportJob{}, nil
}

type MockSequenceRepository struct {
	NextFunc func(ctx context.Context, name string) (int64, error)
}

func (m *MockSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, name)
	}
	return 1, nil
}

// MockTransactionManager runs the callback on the same context, standing in
// for a database transaction.
type MockTransactionManager struct {
	RunInTxFunc func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func (m *MockTransactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

type MockReportQueue struct {
	EnqueueFunc func(jobID uuid.UUID)

	mu       sync.Mutex
	enqueued []uuid.UUID
}

func (m *MockReportQueue) Enqueue(jobID uuid.UUID) {
	if m.EnqueueFunc != nil {
		m.EnqueueFunc(jobID)
		return
	}
	m.mu.Lock()
	m.enqueued = append(m.enqueued, jobID)
	m.mu.Unlock()
}

func (m *MockReportQueue) Enqueued() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID(nil), m.enqueued...)
}
