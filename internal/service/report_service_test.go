package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reportServiceFixture struct {
	svc   ReportService
	repo  *MockReportRepository
	queue *MockReportQueue
}

func newReportServiceFixture() *reportServiceFixture {
	f := &reportServiceFixture{
		repo:  &MockReportRepository{},
		queue: &MockReportQueue{},
	}
	f.repo.CreateFunc = func(ctx context.Context, job *model.ReportJob) error {
		job.ID = uuid.New()
		return nil
	}
	f.svc = NewReportService(f.repo, f.queue)
	return f
}

func TestCreateReportEnqueuesPendingJob(t *testing.T) {
	f := newReportServiceFixture()

	job, err := f.svc.CreateReport(context.Background(), testClerk, CreateReportRequest{Format: model.ReportFormatXLSX})
	require.NoError(t, err)

	assert.Equal(t, model.ReportPending, job.Status)
	assert.Equal(t, testClerk.Email, job.RequesterEmail)
	assert.Empty(t, job.DownloadURL, "no download link before completion")

	enqueued := f.queue.Enqueued()
	require.Len(t, enqueued, 1)
	assert.Equal(t, job.ID, enqueued[0].String())
}

func TestCreateReportSnapshotsFieldSubset(t *testing.T) {
	f := newReportServiceFixture()

	var created *model.ReportJob
	f.repo.CreateFunc = func(ctx context.Context, job *model.ReportJob) error {
		job.ID = uuid.New()
		created = job
		return nil
	}

	_, err := f.svc.CreateReport(context.Background(), testClerk, CreateReportRequest{
		Format: model.ReportFormatCSV,
		Fields: "asset_code, net_book_value",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	var params ReportParams
	require.NoError(t, json.Unmarshal([]byte(created.Params), &params))
	assert.Equal(t, []string{"asset_code", "net_book_value"}, params.Fields)
}

func TestCreateReportRejectsUnknownFields(t *testing.T) {
	f := newReportServiceFixture()

	_, err := f.svc.CreateReport(context.Background(), testClerk, CreateReportRequest{
		Format: model.ReportFormatXLSX,
		Fields: "asset_code,favourite_colour",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.queue.Enqueued())
}

func TestCreateReportRejectsBadFilters(t *testing.T) {
	f := newReportServiceFixture()

	_, err := f.svc.CreateReport(context.Background(), testClerk, CreateReportRequest{
		Format:  model.ReportFormatCSV,
		Filters: AssetListQuery{MajorCategoryID: "not-a-uuid"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.queue.Enqueued(), "invalid filters never reach the pool")
}

func TestGetReportsScopesNonSuperusersToOwnJobs(t *testing.T) {
	f := newReportServiceFixture()

	var scopedTo *uuid.UUID
	f.repo.ListFunc = func(ctx context.Context, requestedBy *uuid.UUID, status string, page, limit int) ([]model.ReportJob, int64, error) {
		scopedTo = requestedBy
		return nil, 0, nil
	}

	_, _, err := f.svc.GetReports(context.Background(), testClerk, "", 1, 20)
	require.NoError(t, err)
	require.NotNil(t, scopedTo)
	assert.Equal(t, testClerk.ID, scopedTo.String())

	scopedTo = nil
	_, _, err = f.svc.GetReports(context.Background(), testAdmin, "", 1, 20)
	require.NoError(t, err)
	assert.Nil(t, scopedTo, "superusers see everyone's jobs")
}

func TestGetReportsRejectsUnknownStatus(t *testing.T) {
	f := newReportServiceFixture()

	_, _, err := f.svc.GetReports(context.Background(), testAdmin, "DONE", 1, 20)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetReportByIDHidesOtherUsersJobs(t *testing.T) {
	f := newReportServiceFixture()

	ownerID := uuid.MustParse(testAdmin.ID)
	job := model.ReportJob{ID: uuid.New(), Status: model.ReportCompleted, RequestedByID: &ownerID}
	f.repo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*model.ReportJob, error) {
		if id == job.ID {
			j := job
			return &j, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	_, err := f.svc.GetReportByID(context.Background(), testClerk, job.ID.String())
	assert.ErrorIs(t, err, ErrNotFound, "someone else's job reads as missing, not forbidden")

	got, err := f.svc.GetReportByID(context.Background(), testAdmin, job.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "/api/reports/"+job.ID.String()+"/download", got.DownloadURL)
}

func TestResolveDownload(t *testing.T) {
	f := newReportServiceFixture()

	job := model.ReportJob{ID: uuid.New(), Status: model.ReportRunning}
	f.repo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*model.ReportJob, error) {
		j := job
		return &j, nil
	}

	_, _, err := f.svc.ResolveDownload(context.Background(), testAdmin, job.ID.String())
	assert.ErrorIs(t, err, ErrConflict, "a job still running is not downloadable")

	job.Status = model.ReportFailed
	job.Error = "render exploded"
	_, _, err = f.svc.ResolveDownload(context.Background(), testAdmin, job.ID.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "render exploded")

	job.Status = model.ReportCompleted
	job.FileName = "assets.xlsx"
	job.FilePath = "/tmp/reports/assets.xlsx"
	name, path, err := f.svc.ResolveDownload(context.Background(), testAdmin, job.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "assets.xlsx", name)
	assert.Equal(t, "/tmp/reports/assets.xlsx", path)
}
