package repository

import (
	"context"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, job *model.ReportJob) error
	Update(ctx context.Context, job *model.ReportJob) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReportJob, error)
	List(ctx context.Context, requestedBy *uuid.UUID, status string, page, limit int) ([]model.ReportJob, int64, error)
	ListPending(ctx context.Context) ([]model.ReportJob, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, job *model.ReportJob) error {
	return GetDB(ctx, r.db).Create(job).Error
}

func (r *reportRepository) Update(ctx context.Context, job *model.ReportJob) error {
	return GetDB(ctx, r.db).Save(job).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReportJob, error) {
	var job model.ReportJob
	if err := GetDB(ctx, r.db).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *reportRepository) List(ctx context.Context, requestedBy *uuid.UUID, status string, page, limit int) ([]model.ReportJob, int64, error) {
	var jobs []model.ReportJob
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.ReportJob{})
	if requestedBy != nil {
		query = query.Where("requested_by_id = ?", *requestedBy)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// ListPending returns jobs that never ran, oldest first. The worker pool
// requeues them on startup so a restart does not strand accepted jobs.
func (r *reportRepository) ListPending(ctx context.Context) ([]model.ReportJob, error) {
	var jobs []model.ReportJob
	if err := GetDB(ctx, r.db).Where("status = ?", model.ReportPending).
		Order("created_at ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
