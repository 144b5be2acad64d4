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

type CreateDepartmentRequest struct {
	Name           string  `json:"name" binding:"required"`
	DepartmentCode string  `json:"department_code" binding:"required"`
	Description    string  `json:"description"`
	ManagerID      *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name           *string `json:"name"`
	DepartmentCode *string `json:"department_code"`
	Description    *string `json:"description"`
	ManagerID      *string `json:"manager_id"` // empty string clears the manager
}

type DepartmentResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	DepartmentCode string      `json:"department_code"`
	Description    string      `json:"description"`
	Manager        *RefSummary `json:"manager"`
	CreatedAt      string      `json:"created_at"`
	UpdatedAt      string      `json:"updated_at"`
}

type DepartmentService interface {
	GetDepartments(ctx context.Context, search string, page, limit int) ([]DepartmentResponse, int64, error)
	GetDepartmentByID(ctx context.Context, id string) (*DepartmentResponse, error)
	CreateDepartment(ctx context.Context, actor Actor, req CreateDepartmentRequest) (*DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, actor Actor, id string, req UpdateDepartmentRequest) (*DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, actor Actor, id string) error
}

type departmentService struct {
	departmentRepo repository.DepartmentRepository
	employeeRepo   repository.EmployeeRepository
	assetRepo      repository.AssetRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
}

func NewDepartmentService(
	departmentRepo repository.DepartmentRepository,
	employeeRepo repository.EmployeeRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) DepartmentService {
	return &departmentService{
		departmentRepo: departmentRepo,
		employeeRepo:   employeeRepo,
		assetRepo:      assetRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
	}
}

func (s *departmentService) GetDepartments(ctx context.Context, search string, page, limit int) ([]DepartmentResponse, int64, error) {
	departments, total, err := s.departmentRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]DepartmentResponse, 0, len(departments))
	for i := range departments {
		res = append(res, toDepartmentResponse(&departments[i]))
	}
	return res, total, nil
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, id string) (*DepartmentResponse, error) {
	department, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toDepartmentResponse(department)
	return &res, nil
}

func (s *departmentService) CreateDepartment(ctx context.Context, actor Actor, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	department := &model.Department{
		Name:           req.Name,
		DepartmentCode: req.DepartmentCode,
		Description:    req.Description,
	}

	if req.ManagerID != nil && *req.ManagerID != "" {
		managerID, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid manager_id", ErrValidation)
		}
		manager, err := s.employeeRepo.FindByID(ctx, managerID)
		if err != nil {
			return nil, refError("employee", err)
		}
		department.ManagerID = &manager.ID
		department.Manager = manager
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.departmentRepo.Create(txCtx, department); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("department name or code already exists: %w", ErrConflict)
			}
			return fmt.Errorf("failed to create department: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionCreateDepartment, model.EntityDepartment, department.ID.String(), department.Name, req)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toDepartmentResponse(department)
	return &res, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, actor Actor, id string, req UpdateDepartmentRequest) (*DepartmentResponse, error) {
	department, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Name != nil && *req.Name != department.Name {
		changes["name"] = map[string]string{"from": department.Name, "to": *req.Name}
		department.Name = *req.Name
	}
	if req.DepartmentCode != nil && *req.DepartmentCode != department.DepartmentCode {
		changes["department_code"] = map[string]string{"from": department.DepartmentCode, "to": *req.DepartmentCode}
		department.DepartmentCode = *req.DepartmentCode
	}
	if req.Description != nil && *req.Description != department.Description {
		changes["description"] = map[string]string{"from": department.Description, "to": *req.Description}
		department.Description = *req.Description
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			if department.ManagerID != nil {
				changes["manager_id"] = map[string]interface{}{"from": department.ManagerID.String(), "to": nil}
				department.ManagerID = nil
				department.Manager = nil
			}
		} else {
			managerID, err := uuid.Parse(*req.ManagerID)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid manager_id", ErrValidation)
			}
			if department.ManagerID == nil || *department.ManagerID != managerID {
				manager, err := s.employeeRepo.FindByID(ctx, managerID)
				if err != nil {
					return nil, refError("employee", err)
				}
				from := interface{}(nil)
				if department.ManagerID != nil {
					from = department.ManagerID.String()
				}
				changes["manager_id"] = map[string]interface{}{"from": from, "to": manager.ID.String()}
				department.ManagerID = &manager.ID
				department.Manager = manager
			}
		}
	}
	if len(changes) == 0 {
		res := toDepartmentResponse(department)
		return &res, nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.departmentRepo.Update(txCtx, department); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("department name or code already exists: %w", ErrConflict)
			}
			return fmt.Errorf("failed to update department: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionUpdateDepartment, model.EntityDepartment, department.ID.String(), department.Name, changes)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toDepartmentResponse(department)
	return &res, nil
}

// DeleteDepartment refuses to remove a department that still has employees or
// assets, matching the database restrict constraints.
func (s *departmentService) DeleteDepartment(ctx context.Context, actor Actor, id string) error {
	department, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	employees, err := s.employeeRepo.CountByDepartment(ctx, department.ID)
	if err != nil {
		return err
	}
	if employees > 0 {
		return fmt.Errorf("department %q still has %d employees: %w", department.Name, employees, ErrConflict)
	}

	assets, err := s.assetRepo.CountByDepartment(ctx, department.ID)
	if err != nil {
		return err
	}
	if assets > 0 {
		return fmt.Errorf("department %q still has %d assets: %w", department.Name, assets, ErrConflict)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.departmentRepo.Delete(txCtx, department.ID); err != nil {
			return fmt.Errorf("failed to delete department: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionDeleteDepartment, model.EntityDepartment, department.ID.String(), department.Name, nil)
		return s.auditRepo.Log(txCtx, entry)
	})
}

func (s *departmentService) find(ctx context.Context, id string) (*model.Department, error) {
	departmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid department id", ErrValidation)
	}
	department, err := s.departmentRepo.FindByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("department not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return department, nil
}

func toDepartmentResponse(department *model.Department) DepartmentResponse {
	res := DepartmentResponse{
		ID:             department.ID.String(),
		Name:           department.Name,
		DepartmentCode: department.DepartmentCode,
		Description:    department.Description,
		CreatedAt:      department.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      department.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if department.ManagerID != nil && department.Manager != nil {
		res.Manager = &RefSummary{ID: department.ManagerID.String(), Name: department.Manager.FullName()}
	}
	return res
}
