package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateEmployeeRequest struct {
	FirstName      string  `json:"first_name" binding:"required"`
	MiddleName     *string `json:"middle_name"`
	LastName       string  `json:"last_name" binding:"required"`
	EmployeeNumber string  `json:"employee_number" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	MobileNumber   string  `json:"mobile_number"`
	JobTitle       string  `json:"job_title"`
	DateOfBirth    *string `json:"date_of_birth"`
	DateHired      *string `json:"date_hired"`
	Address        string  `json:"address"`
	DepartmentID   string  `json:"department_id" binding:"required,uuid"`
}

type UpdateEmployeeRequest struct {
	FirstName      *string `json:"first_name"`
	MiddleName     *string `json:"middle_name"`
	LastName       *string `json:"last_name"`
	EmployeeNumber *string `json:"employee_number"`
	Email          *string `json:"email"`
	MobileNumber   *string `json:"mobile_number"`
	JobTitle       *string `json:"job_title"`
	DateOfBirth    *string `json:"date_of_birth"`
	DateHired      *string `json:"date_hired"`
	Address        *string `json:"address"`
	DepartmentID   *string `json:"department_id"`
}

type EmployeeResponse struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	MiddleName     *string    `json:"middle_name"`
	LastName       string     `json:"last_name"`
	FullName       string     `json:"full_name"`
	EmployeeNumber string     `json:"employee_number"`
	Email          string     `json:"email"`
	MobileNumber   string     `json:"mobile_number"`
	JobTitle       string     `json:"job_title"`
	DateOfBirth    *string    `json:"date_of_birth"`
	DateHired      *string    `json:"date_hired"`
	Address        string     `json:"address"`
	Department     RefSummary `json:"department"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

type EmployeeService interface {
	GetEmployees(ctx context.Context, search, departmentID string, page, limit int) ([]EmployeeResponse, int64, error)
	GetEmployeeByID(ctx context.Context, id string) (*EmployeeResponse, error)
	CreateEmployee(ctx context.Context, actor Actor, req CreateEmployeeRequest) (*EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, actor Actor, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, actor Actor, id string) error
}

type employeeService struct {
	employeeRepo   repository.EmployeeRepository
	departmentRepo repository.DepartmentRepository
	assetRepo      repository.AssetRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	departmentRepo repository.DepartmentRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) EmployeeService {
	return &employeeService{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		assetRepo:      assetRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
	}
}

func (s *employeeService) GetEmployees(ctx context.Context, search, departmentID string, page, limit int) ([]EmployeeResponse, int64, error) {
	var deptID *uuid.UUID
	if departmentID != "" {
		parsed, err := uuid.Parse(departmentID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid department_id", ErrValidation)
		}
		deptID = &parsed
	}

	employees, total, err := s.employeeRepo.List(ctx, deptID, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		res = append(res, toEmployeeResponse(&employees[i]))
	}
	return res, total, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, id string) (*EmployeeResponse, error) {
	employee, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toEmployeeResponse(employee)
	return &res, nil
}

func (s *employeeService) CreateEmployee(ctx context.Context, actor Actor, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid department_id", ErrValidation)
	}
	department, err := s.departmentRepo.FindByID(ctx, departmentID)
	if err != nil {
		return nil, refError("department", err)
	}

	employee := &model.Employee{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		EmployeeNumber: req.EmployeeNumber,
		Email:          req.Email,
		MobileNumber:   req.MobileNumber,
		JobTitle:       req.JobTitle,
		Address:        req.Address,
		DepartmentID:   department.ID,
	}

	if employee.DateOfBirth, err = parseOptionalDate("date_of_birth", req.DateOfBirth); err != nil {
		return nil, err
	}
	if employee.DateHired, err = parseOptionalDate("date_hired", req.DateHired); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.employeeRepo.Create(txCtx, employee); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("employee number or email already exists: %w", ErrConflict)
			}
			return fmt.Errorf("failed to create employee: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionCreateEmployee, model.EntityEmployee, employee.ID.String(), employee.FullName(), req)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	employee.Department = *department
	res := toEmployeeResponse(employee)
	return &res, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, actor Actor, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.find(ctx, id)
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

	setString("first_name", &employee.FirstName, req.FirstName)
	setString("last_name", &employee.LastName, req.LastName)
	setString("employee_number", &employee.EmployeeNumber, req.EmployeeNumber)
	setString("email", &employee.Email, req.Email)
	setString("mobile_number", &employee.MobileNumber, req.MobileNumber)
	setString("job_title", &employee.JobTitle, req.JobTitle)
	setString("address", &employee.Address, req.Address)

	if req.MiddleName != nil {
		changes["middle_name"] = map[string]interface{}{"from": employee.MiddleName, "to": *req.MiddleName}
		employee.MiddleName = req.MiddleName
	}

	if req.DateOfBirth != nil {
		dob, err := parseOptionalDate("date_of_birth", req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		changes["date_of_birth"] = map[string]interface{}{"from": formatOptionalDate(employee.DateOfBirth), "to": formatOptionalDate(dob)}
		employee.DateOfBirth = dob
	}
	if req.DateHired != nil {
		hired, err := parseOptionalDate("date_hired", req.DateHired)
		if err != nil {
			return nil, err
		}
		changes["date_hired"] = map[string]interface{}{"from": formatOptionalDate(employee.DateHired), "to": formatOptionalDate(hired)}
		employee.DateHired = hired
	}

	if req.DepartmentID != nil {
		departmentID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid department_id", ErrValidation)
		}
		if departmentID != employee.DepartmentID {
			department, err := s.departmentRepo.FindByID(ctx, departmentID)
			if err != nil {
				return nil, refError("department", err)
			}
			changes["department_id"] = map[string]string{"from": employee.DepartmentID.String(), "to": department.ID.String()}
			employee.DepartmentID = department.ID
			employee.Department = *department
		}
	}

	if len(changes) == 0 {
		res := toEmployeeResponse(employee)
		return &res, nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.employeeRepo.Update(txCtx, employee); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("employee number or email already exists: %w", ErrConflict)
			}
			return fmt.Errorf("failed to update employee: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionUpdateEmployee, model.EntityEmployee, employee.ID.String(), employee.FullName(), changes)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toEmployeeResponse(employee)
	return &res, nil
}

// DeleteEmployee removes the employee; assets assigned to them are detached
// rather than deleted.
func (s *employeeService) DeleteEmployee(ctx context.Context, actor Actor, id string) error {
	employee, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.employeeRepo.Delete(txCtx, employee.ID); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionDeleteEmployee, model.EntityEmployee, employee.ID.String(), employee.FullName(), employee)
		return s.auditRepo.Log(txCtx, entry)
	})
}

func (s *employeeService) find(ctx context.Context, id string) (*model.Employee, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid employee id", ErrValidation)
	}
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("employee not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return employee, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be formatted YYYY-MM-DD", ErrValidation, field)
	}
	return &parsed, nil
}

func formatOptionalDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}

func toEmployeeResponse(employee *model.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             employee.ID.String(),
		FirstName:      employee.FirstName,
		MiddleName:     employee.MiddleName,
		LastName:       employee.LastName,
		FullName:       employee.FullName(),
		EmployeeNumber: employee.EmployeeNumber,
		Email:          employee.Email,
		MobileNumber:   employee.MobileNumber,
		JobTitle:       employee.JobTitle,
		DateOfBirth:    formatOptionalDate(employee.DateOfBirth),
		DateHired:      formatOptionalDate(employee.DateHired),
		Address:        employee.Address,
		Department:     RefSummary{ID: employee.DepartmentID.String(), Name: employee.Department.Name},
		CreatedAt:      employee.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      employee.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
