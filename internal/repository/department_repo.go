package repository

import (
	"context"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(ctx context.Context, department *model.Department) error
	Update(ctx context.Context, department *model.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Department, error)
	FindByCode(ctx context.Context, code string) (*model.Department, error)
	FindByName(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context, search string, page, limit int) ([]model.Department, int64, error)
	Count(ctx context.Context) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	return GetDB(ctx, r.db).Create(department).Error
}

func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	return GetDB(ctx, r.db).Save(department).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Department{}).Error
}

func (r *departmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	var department model.Department
	if err := GetDB(ctx, r.db).Preload("Manager").First(&department, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindByCode(ctx context.Context, code string) (*model.Department, error) {
	var department model.Department
	if err := GetDB(ctx, r.db).Where("department_code = ?", code).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindByName(ctx context.Context, name string) (*model.Department, error) {
	var department model.Department
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) List(ctx context.Context, search string, page, limit int) ([]model.Department, int64, error) {
	var departments []model.Department
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Department{})
	if search != "" {
		query = query.Where("name ILIKE ? OR department_code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Manager").Order("name ASC").Offset(offset).Limit(limit).Find(&departments).Error; err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Department{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
