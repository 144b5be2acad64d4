package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	SupplierCode  string `json:"supplier_code" binding:"required"`
	ContactPerson string `json:"contact_person"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email" binding:"required,email"`
	Address       string `json:"address"`
	Website       string `json:"website"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	SupplierCode  *string `json:"supplier_code"`
	ContactPerson *string `json:"contact_person"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	Website       *string `json:"website"`
}

type SupplierResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SupplierCode  string `json:"supplier_code"`
	ContactPerson string `json:"contact_person"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Website       string `json:"website"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type SupplierService interface {
	GetSuppliers(ctx context.Context, search string, page, limit int) ([]SupplierResponse, int64, error)
	GetSupplierByID(ctx context.Context, id string) (*SupplierResponse, error)
	CreateSupplier(ctx context.Context, actor Actor, req CreateSupplierRequest) (*SupplierResponse, error)
	UpdateSupplier(ctx context.Context, actor Actor, id string, req UpdateSupplierRequest) (*SupplierResponse, error)
	DeleteSupplier(ctx context.Context, actor Actor, id string) error
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	assetRepo    repository.AssetRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewSupplierService(
	supplierRepo repository.SupplierRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		assetRepo:    assetRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

func (s *supplierService) GetSuppliers(ctx context.Context, search string, page, limit int) ([]SupplierResponse, int64, error) {
	suppliers, total, err := s.supplierRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		res = append(res, toSupplierResponse(&suppliers[i]))
	}
	return res, total, nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, id string) (*SupplierResponse, error) {
	supplier, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toSupplierResponse(supplier)
	return &res, nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, actor Actor, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier := &model.Supplier{
		Name:          req.Name,
		SupplierCode:  req.SupplierCode,
		ContactPerson: req.ContactPerson,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Address:       req.Address,
		Website:       req.Website,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplierRepo.Create(txCtx, supplier); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("supplier code or email already exists: %w", ErrConflict)
			}
			return fmt.Errorf("failed to create supplier: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionCreateSupplier, model.EntitySupplier, supplier.ID.String(), supplier.Name, req)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toSupplierResponse(supplier)
	return &res, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, actor Actor, id string, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	setString := func(field string, dst *string, value *string) {
		if value != nil && *value != *dst {
			changes[field] = map[string]string{"from": *dst, "to": *value}
			*dst = *value
		}
	}

	setString("name", &supplier.Name, req.Name)
	setString("supplier_code", &supplier.SupplierCode, req.SupplierCode)
	setString("contact_person", &supplier.ContactPerson, req.ContactPerson)
	setString("phone_number", &supplier.PhoneNumber, req.PhoneNumber)
	setString("email", &supplier.Email, req.Email)
	setString("address", &supplier.Address, req.Address)
	setString("website", &supplier.Website, req.Website)

	if len(changes) == 0 {
		res := toSupplierResponse(supplier)
		return &res, nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplierRepo.Update(txCtx, supplier); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("supplier code or email already exists: %w", ErrConflict)
			}
			return fmt.Errorf("failed to update supplier: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionUpdateSupplier, model.EntitySupplier, supplier.ID.String(), supplier.Name, changes)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toSupplierResponse(supplier)
	return &res, nil
}

// DeleteSupplier refuses to remove a supplier that assets still reference,
// matching the database restrict constraint.
func (s *supplierService) DeleteSupplier(ctx context.Context, actor Actor, id string) error {
	supplier, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	assets, err := s.assetRepo.CountBySupplier(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if assets > 0 {
		return fmt.Errorf("supplier %q still has %d assets on record: %w", supplier.Name, assets, ErrConflict)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplierRepo.Delete(txCtx, supplier.ID); err != nil {
			return fmt.Errorf("failed to delete supplier: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionDeleteSupplier, model.EntitySupplier, supplier.ID.String(), supplier.Name, nil)
		return s.auditRepo.Log(txCtx, entry)
	})
}

func (s *supplierService) find(ctx context.Context, id string) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supplier id", ErrValidation)
	}
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return supplier, nil
}

func toSupplierResponse(supplier *model.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            supplier.ID.String(),
		Name:          supplier.Name,
		SupplierCode:  supplier.SupplierCode,
		ContactPerson: supplier.ContactPerson,
		PhoneNumber:   supplier.PhoneNumber,
		Email:         supplier.Email,
		Address:       supplier.Address,
		Website:       supplier.Website,
		CreatedAt:     supplier.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     supplier.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
