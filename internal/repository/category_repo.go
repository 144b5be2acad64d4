package repository

import (
	"context"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MajorCategoryRepository interface {
	Create(ctx context.Context, category *model.MajorCategory) error
	Update(ctx context.Context, category *model.MajorCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MajorCategory, error)
	FindByName(ctx context.Context, name string) (*model.MajorCategory, error)
	List(ctx context.Context, search string, page, limit int) ([]model.MajorCategory, int64, error)
	Count(ctx context.Context) (int64, error)
}

type majorCategoryRepository struct {
	db *gorm.DB
}

func NewMajorCategoryRepository(db *gorm.DB) MajorCategoryRepository {
	return &majorCategoryRepository{db: db}
}

func (r *majorCategoryRepository) Create(ctx context.Context, category *model.MajorCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *majorCategoryRepository) Update(ctx context.Context, category *model.MajorCategory) error {
	return GetDB(ctx, r.db).Save(category).Error
}

// Delete removes the category; the database cascades to its minor categories
// and every asset filed under them.
func (r *majorCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.MajorCategory{}).Error
}

func (r *majorCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MajorCategory, error) {
	var category model.MajorCategory
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *majorCategoryRepository) FindByName(ctx context.Context, name string) (*model.MajorCategory, error) {
	var category model.MajorCategory
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *majorCategoryRepository) List(ctx context.Context, search string, page, limit int) ([]model.MajorCategory, int64, error) {
	var categories []model.MajorCategory
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.MajorCategory{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *majorCategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.MajorCategory{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type MinorCategoryRepository interface {
	Create(ctx context.Context, category *model.MinorCategory) error
	Update(ctx context.Context, category *model.MinorCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MinorCategory, error)
	FindByName(ctx context.Context, majorCategoryID uuid.UUID, name string) (*model.MinorCategory, error)
	List(ctx context.Context, majorCategoryID *uuid.UUID, search string, page, limit int) ([]model.MinorCategory, int64, error)
	CountByMajorCategory(ctx context.Context, majorCategoryID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type minorCategoryRepository struct {
	db *gorm.DB
}

func NewMinorCategoryRepository(db *gorm.DB) MinorCategoryRepository {
	return &minorCategoryRepository{db: db}
}

func (r *minorCategoryRepository) Create(ctx context.Context, category *model.MinorCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *minorCategoryRepository) Update(ctx context.Context, category *model.MinorCategory) error {
	return GetDB(ctx, r.db).Save(category).Error
}

func (r *minorCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.MinorCategory{}).Error
}

func (r *minorCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MinorCategory, error) {
	var category model.MinorCategory
	if err := GetDB(ctx, r.db).Preload("MajorCategory").First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName looks a minor category up inside one major category; names are
// only unique per major category.
func (r *minorCategoryRepository) FindByName(ctx context.Context, majorCategoryID uuid.UUID, name string) (*model.MinorCategory, error) {
	var category model.MinorCategory
	if err := GetDB(ctx, r.db).Preload("MajorCategory").
		Where("major_category_id = ? AND name = ?", majorCategoryID, name).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *minorCategoryRepository) List(ctx context.Context, majorCategoryID *uuid.UUID, search string, page, limit int) ([]model.MinorCategory, int64, error) {
	var categories []model.MinorCategory
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.MinorCategory{})
	if majorCategoryID != nil {
		query = query.Where("major_category_id = ?", *majorCategoryID)
	}
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("MajorCategory").Order("name ASC").Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *minorCategoryRepository) CountByMajorCategory(ctx context.Context, majorCategoryID uuid.UUID) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.MinorCategory{}).
		Where("major_category_id = ?", majorCategoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *minorCategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.MinorCategory{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
