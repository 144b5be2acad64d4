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

type CreateMajorCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateMajorCategoryRequest struct {
	Name *string `json:"name"`
}

type CreateMinorCategoryRequest struct {
	Name            string `json:"name" binding:"required"`
	MajorCategoryID string `json:"major_category_id" binding:"required,uuid"`
}

type UpdateMinorCategoryRequest struct {
	Name            *string `json:"name"`
	MajorCategoryID *string `json:"major_category_id"`
}

type MajorCategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EconomicLife int    `json:"economic_life"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type MinorCategoryResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	MajorCategory RefSummary `json:"major_category"`
	CreatedAt     string     `json:"created_at"`
	UpdatedAt     string     `json:"updated_at"`
}

// DeleteImpact reports what a reference deletion would remove or detach.
type DeleteImpact struct {
	MinorCategories int64 `json:"minor_categories,omitempty"`
	Assets          int64 `json:"assets"`
}

type CategoryService interface {
	GetMajorCategories(ctx context.Context, search string, page, limit int) ([]MajorCategoryResponse, int64, error)
	GetMajorCategoryByID(ctx context.Context, id string) (*MajorCategoryResponse, error)
	CreateMajorCategory(ctx context.Context, actor Actor, req CreateMajorCategoryRequest) (*MajorCategoryResponse, error)
	UpdateMajorCategory(ctx context.Context, actor Actor, id string, req UpdateMajorCategoryRequest) (*MajorCategoryResponse, error)
	DeleteMajorCategory(ctx context.Context, actor Actor, id string, confirm bool) (*DeleteImpact, error)

	GetMinorCategories(ctx context.Context, majorCategoryID, search string, page, limit int) ([]MinorCategoryResponse, int64, error)
	GetMinorCategoryByID(ctx context.Context, id string) (*MinorCategoryResponse, error)
	CreateMinorCategory(ctx context.Context, actor Actor, req CreateMinorCategoryRequest) (*MinorCategoryResponse, error)
	UpdateMinorCategory(ctx context.Context, actor Actor, id string, req UpdateMinorCategoryRequest) (*MinorCategoryResponse, error)
	DeleteMinorCategory(ctx context.Context, actor Actor, id string, confirm bool) (*DeleteImpact, error)
}

type categoryService struct {
	majorRepo repository.MajorCategoryRepository
	minorRepo repository.MinorCategoryRepository
	assetRepo repository.AssetRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewCategoryService(
	majorRepo repository.MajorCategoryRepository,
	minorRepo repository.MinorCategoryRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CategoryService {
	return &categoryService{
		majorRepo: majorRepo,
		minorRepo: minorRepo,
		assetRepo: assetRepo,
		auditRepo: auditRepo,
		txManager: txManager,
	}
}

func (s *categoryService) GetMajorCategories(ctx context.Context, search string, page, limit int) ([]MajorCategoryResponse, int64, error) {
	categories, total, err := s.majorRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]MajorCategoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, toMajorCategoryResponse(&categories[i]))
	}
	return res, total, nil
}

func (s *categoryService) GetMajorCategoryByID(ctx context.Context, id string) (*MajorCategoryResponse, error) {
	category, err := s.findMajor(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toMajorCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) CreateMajorCategory(ctx context.Context, actor Actor, req CreateMajorCategoryRequest) (*MajorCategoryResponse, error) {
	category := &model.MajorCategory{Name: req.Name}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.majorRepo.Create(txCtx, category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("major category %q already exists: %w", req.Name, ErrConflict)
			}
			return fmt.Errorf("failed to create major category: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionCreateMajorCategory, model.EntityMajorCategory, category.ID.String(), category.Name, req)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toMajorCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) UpdateMajorCategory(ctx context.Context, actor Actor, id string, req UpdateMajorCategoryRequest) (*MajorCategoryResponse, error) {
	category, err := s.findMajor(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Name != nil && *req.Name != category.Name {
		changes["name"] = map[string]string{"from": category.Name, "to": *req.Name}
		category.Name = *req.Name
	}
	if len(changes) == 0 {
		res := toMajorCategoryResponse(category)
		return &res, nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.majorRepo.Update(txCtx, category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("major category %q already exists: %w", category.Name, ErrConflict)
			}
			return fmt.Errorf("failed to update major category: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionUpdateMajorCategory, model.EntityMajorCategory, category.ID.String(), category.Name, changes)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toMajorCategoryResponse(category)
	return &res, nil
}

// DeleteMajorCategory removes a major category. The database cascades the
// delete to minor categories and assets, so when dependents exist the caller
// must pass confirm to acknowledge the blast radius.
func (s *categoryService) DeleteMajorCategory(ctx context.Context, actor Actor, id string, confirm bool) (*DeleteImpact, error) {
	category, err := s.findMajor(ctx, id)
	if err != nil {
		return nil, err
	}

	minors, err := s.minorRepo.CountByMajorCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.CountByMajorCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	impact := &DeleteImpact{MinorCategories: minors, Assets: assets}

	if (minors > 0 || assets > 0) && !confirm {
		return impact, fmt.Errorf(
			"deleting major category %q also deletes %d minor categories and %d assets; repeat with confirm=true: %w",
			category.Name, minors, assets, ErrConflict)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.majorRepo.Delete(txCtx, category.ID); err != nil {
			return fmt.Errorf("failed to delete major category: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionDeleteMajorCategory, model.EntityMajorCategory, category.ID.String(), category.Name, impact)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return impact, nil
}

func (s *categoryService) GetMinorCategories(ctx context.Context, majorCategoryID, search string, page, limit int) ([]MinorCategoryResponse, int64, error) {
	var majorID *uuid.UUID
	if majorCategoryID != "" {
		parsed, err := uuid.Parse(majorCategoryID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid major_category_id", ErrValidation)
		}
		majorID = &parsed
	}

	categories, total, err := s.minorRepo.List(ctx, majorID, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]MinorCategoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, toMinorCategoryResponse(&categories[i]))
	}
	return res, total, nil
}

func (s *categoryService) GetMinorCategoryByID(ctx context.Context, id string) (*MinorCategoryResponse, error) {
	category, err := s.findMinor(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toMinorCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) CreateMinorCategory(ctx context.Context, actor Actor, req CreateMinorCategoryRequest) (*MinorCategoryResponse, error) {
	majorID, err := uuid.Parse(req.MajorCategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid major_category_id", ErrValidation)
	}
	major, err := s.majorRepo.FindByID(ctx, majorID)
	if err != nil {
		return nil, refError("major category", err)
	}

	category := &model.MinorCategory{Name: req.Name, MajorCategoryID: major.ID}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.minorRepo.Create(txCtx, category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("minor category %q already exists under %q: %w", req.Name, major.Name, ErrConflict)
			}
			return fmt.Errorf("failed to create minor category: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionCreateMinorCategory, model.EntityMinorCategory, category.ID.String(), category.Name, req)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	category.MajorCategory = *major
	res := toMinorCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) UpdateMinorCategory(ctx context.Context, actor Actor, id string, req UpdateMinorCategoryRequest) (*MinorCategoryResponse, error) {
	category, err := s.findMinor(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Name != nil && *req.Name != category.Name {
		changes["name"] = map[string]string{"from": category.Name, "to": *req.Name}
		category.Name = *req.Name
	}
	if req.MajorCategoryID != nil {
		majorID, err := uuid.Parse(*req.MajorCategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid major_category_id", ErrValidation)
		}
		if majorID != category.MajorCategoryID {
			major, err := s.majorRepo.FindByID(ctx, majorID)
			if err != nil {
				return nil, refError("major category", err)
			}
			changes["major_category_id"] = map[string]string{
				"from": category.MajorCategoryID.String(),
				"to":   major.ID.String(),
			}
			category.MajorCategoryID = major.ID
			category.MajorCategory = *major
		}
	}
	if len(changes) == 0 {
		res := toMinorCategoryResponse(category)
		return &res, nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.minorRepo.Update(txCtx, category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("minor category %q already exists under that major category: %w", category.Name, ErrConflict)
			}
			return fmt.Errorf("failed to update minor category: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionUpdateMinorCategory, model.EntityMinorCategory, category.ID.String(), category.Name, changes)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toMinorCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) DeleteMinorCategory(ctx context.Context, actor Actor, id string, confirm bool) (*DeleteImpact, error) {
	category, err := s.findMinor(ctx, id)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.CountByMinorCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	impact := &DeleteImpact{Assets: assets}

	if assets > 0 && !confirm {
		return impact, fmt.Errorf(
			"deleting minor category %q also deletes %d assets; repeat with confirm=true: %w",
			category.Name, assets, ErrConflict)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.minorRepo.Delete(txCtx, category.ID); err != nil {
			return fmt.Errorf("failed to delete minor category: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionDeleteMinorCategory, model.EntityMinorCategory, category.ID.String(), category.Name, impact)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return impact, nil
}

func (s *categoryService) findMajor(ctx context.Context, id string) (*model.MajorCategory, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category id", ErrValidation)
	}
	category, err := s.majorRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("major category not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return category, nil
}

func (s *categoryService) findMinor(ctx context.Context, id string) (*model.MinorCategory, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category id", ErrValidation)
	}
	category, err := s.minorRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("minor category not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return category, nil
}

func toMajorCategoryResponse(category *model.MajorCategory) MajorCategoryResponse {
	return MajorCategoryResponse{
		ID:           category.ID.String(),
		Name:         category.Name,
		EconomicLife: model.EconomicLifeFor(category.Name),
		CreatedAt:    category.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    category.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toMinorCategoryResponse(category *model.MinorCategory) MinorCategoryResponse {
	return MinorCategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
		MajorCategory: RefSummary{
			ID:   category.MajorCategoryID.String(),
			Name: category.MajorCategory.Name,
		},
		CreatedAt: category.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: category.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
