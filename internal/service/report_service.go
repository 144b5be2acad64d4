package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"
	"github.com/Kakazablone/AssetDome/internal/spreadsheet"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReportRequest struct {
	Format  string         `json:"format" binding:"required,oneof=xlsx csv"`
	Filters AssetListQuery `json:"filters"`
	// Fields is an optional comma separated column subset for the rendered file.
	Fields string `json:"fields"`
}

// ReportParams is the snapshot stored in ReportJob.Params. The worker decodes
// it when rendering, so a job produces the same file even if the request types
// evolve or the caller is long gone.
type ReportParams struct {
	Filters AssetListQuery `json:"filters"`
	Fields  []string       `json:"fields,omitempty"`
}

type ReportJobResponse struct {
	ID             string  `json:"id"`
	Format         string  `json:"format"`
	Status         string  `json:"status"`
	FileName       string  `json:"file_name,omitempty"`
	Error          string  `json:"error,omitempty"`
	RequesterEmail string  `json:"requester_email"`
	DownloadURL    string  `json:"download_url,omitempty"`
	StartedAt      *string `json:"started_at"`
	CompletedAt    *string `json:"completed_at"`
	CreatedAt      string  `json:"created_at"`
}

// ReportQueue hands accepted jobs to the background pool. Split out as an
// interface so the service does not depend on the worker package.
type ReportQueue interface {
	Enqueue(jobID uuid.UUID)
}

type ReportService interface {
	CreateReport(ctx context.Context, actor Actor, req CreateReportRequest) (*ReportJobResponse, error)
	GetReports(ctx context.Context, actor Actor, status string, page, limit int) ([]ReportJobResponse, int64, error)
	GetReportByID(ctx context.Context, actor Actor, id string) (*ReportJobResponse, error)
	// ResolveDownload returns the stored file for a completed job.
	ResolveDownload(ctx context.Context, actor Actor, id string) (fileName, filePath string, err error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	queue      ReportQueue
}

func NewReportService(reportRepo repository.ReportRepository, queue ReportQueue) ReportService {
	return &reportService{reportRepo: reportRepo, queue: queue}
}

// CreateReport accepts the job and hands it to the pool; rendering happens in
// the background and clients poll the job id. Filters and the field subset
// are parsed up front so a bad request fails at submission instead of inside
// the worker.
func (s *reportService) CreateReport(ctx context.Context, actor Actor, req CreateReportRequest) (*ReportJobResponse, error) {
	if _, err := buildAssetFilter(req.Filters); err != nil {
		return nil, err
	}
	fields, err := spreadsheet.ParseFields(req.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	params, err := json.Marshal(ReportParams{Filters: req.Filters, Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("failed to encode report parameters: %w", err)
	}

	job := &model.ReportJob{
		Format:         req.Format,
		Params:         string(params),
		Status:         model.ReportPending,
		RequesterEmail: actor.Email,
	}
	if actorID, err := uuid.Parse(actor.ID); err == nil {
		job.RequestedByID = &actorID
	}

	if err := s.reportRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create report job: %w", err)
	}

	s.queue.Enqueue(job.ID)

	res := toReportResponse(job)
	return &res, nil
}

func (s *reportService) GetReports(ctx context.Context, actor Actor, status string, page, limit int) ([]ReportJobResponse, int64, error) {
	if status != "" {
		switch status {
		case model.ReportPending, model.ReportRunning, model.ReportCompleted, model.ReportFailed:
		default:
			return nil, 0, fmt.Errorf("%w: invalid report status", ErrValidation)
		}
	}

	// Regular users only see their own jobs.
	var requestedBy *uuid.UUID
	if !actor.Superuser {
		actorID, err := uuid.Parse(actor.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid actor id", ErrValidation)
		}
		requestedBy = &actorID
	}

	jobs, total, err := s.reportRepo.List(ctx, requestedBy, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]ReportJobResponse, 0, len(jobs))
	for i := range jobs {
		res = append(res, toReportResponse(&jobs[i]))
	}
	return res, total, nil
}

func (s *reportService) GetReportByID(ctx context.Context, actor Actor, id string) (*ReportJobResponse, error) {
	job, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	res := toReportResponse(job)
	return &res, nil
}

func (s *reportService) ResolveDownload(ctx context.Context, actor Actor, id string) (string, string, error) {
	job, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return "", "", err
	}

	switch job.Status {
	case model.ReportCompleted:
		if job.FilePath == "" {
			return "", "", fmt.Errorf("report file is missing: %w", ErrNotFound)
		}
		return job.FileName, job.FilePath, nil
	case model.ReportFailed:
		return "", "", fmt.Errorf("report failed: %s: %w", job.Error, ErrConflict)
	default:
		return "", "", fmt.Errorf("report is not ready yet: %w", ErrConflict)
	}
}

func (s *reportService) findVisible(ctx context.Context, actor Actor, id string) (*model.ReportJob, error) {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid report id", ErrValidation)
	}

	job, err := s.reportRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !actor.Superuser {
		if job.RequestedByID == nil || job.RequestedByID.String() != actor.ID {
			// Hidden rather than forbidden so job ids stay unguessable.
			return nil, fmt.Errorf("report not found: %w", ErrNotFound)
		}
	}
	return job, nil
}

func toReportResponse(job *model.ReportJob) ReportJobResponse {
	res := ReportJobResponse{
		ID:             job.ID.String(),
		Format:         job.Format,
		Status:         job.Status,
		FileName:       job.FileName,
		Error:          job.Error,
		RequesterEmail: job.RequesterEmail,
		CreatedAt:      job.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if job.Status == model.ReportCompleted {
		res.DownloadURL = fmt.Sprintf("/api/reports/%s/download", job.ID)
	}
	if job.StartedAt != nil {
		started := job.StartedAt.Format("2006-01-02T15:04:05Z07:00")
		res.StartedAt = &started
	}
	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
		res.CompletedAt = &completed
	}
	return res
}
