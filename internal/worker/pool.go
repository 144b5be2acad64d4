// Package worker renders queued report jobs in the background.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"
	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/internal/spreadsheet"
	ws "github.com/Kakazablone/AssetDome/internal/websocket"

	"github.com/google/uuid"
)

// Pool runs a fixed set of workers over a job channel. The report service
// enqueues accepted jobs; each worker claims one, renders the file, and moves
// the job through RUNNING to COMPLETED or FAILED.
type Pool struct {
	jobs       chan uuid.UUID
	workers    int
	outputDir  string
	reportRepo repository.ReportRepository
	assets     service.AssetService
	hub        *ws.Hub
	wg         sync.WaitGroup
}

func NewPool(workers int, outputDir string, reportRepo repository.ReportRepository, assets service.AssetService, hub *ws.Hub) *Pool {
	if workers <= 0 {
		workers = 2
	}
	return &Pool{
		jobs:       make(chan uuid.UUID, 64),
		workers:    workers,
		outputDir:  outputDir,
		reportRepo: reportRepo,
		assets:     assets,
		hub:        hub,
	}
}

// Start launches the workers and requeues jobs that were accepted before a
// restart, so no job is stranded in PENDING.
func (p *Pool) Start(ctx context.Context) error {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %q: %w", p.outputDir, err)
	}

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx)
		}()
	}

	pending, err := p.reportRepo.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to requeue pending reports: %w", err)
	}
	for _, job := range pending {
		p.Enqueue(job.ID)
	}
	return nil
}

func (p *Pool) Enqueue(jobID uuid.UUID) {
	p.jobs <- jobID
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context) {
	for jobID := range p.jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := p.process(ctx, jobID); err != nil {
			log.Printf("report %s: %v", jobID, err)
		}
	}
}

func (p *Pool) process(ctx context.Context, jobID uuid.UUID) error {
	job, err := p.reportRepo.FindByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}
	// Requeued and freshly enqueued ids can overlap after a restart.
	if job.Status != model.ReportPending {
		return nil
	}

	started := time.Now()
	job.Status = model.ReportRunning
	job.StartedAt = &started
	if err := p.reportRepo.Update(ctx, job); err != nil {
		return fmt.Errorf("failed to mark job running: %w", err)
	}

	renderErr := p.render(ctx, job)
	completed := time.Now()
	job.CompletedAt = &completed

	if renderErr != nil {
		job.Status = model.ReportFailed
		job.Error = renderErr.Error()
		if err := p.reportRepo.Update(ctx, job); err != nil {
			return fmt.Errorf("failed to mark job failed: %w", err)
		}
		p.hub.BroadcastEvent(ws.EventReportFailed, map[string]string{
			"id":    job.ID.String(),
			"error": job.Error,
		})
		return renderErr
	}

	job.Status = model.ReportCompleted
	if err := p.reportRepo.Update(ctx, job); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}
	p.hub.BroadcastEvent(ws.EventReportCompleted, map[string]string{
		"id":        job.ID.String(),
		"file_name": job.FileName,
	})
	return nil
}

// render writes the report file and fills in the job's file fields. The file
// on disk is keyed by job id; FileName is the human facing download name.
func (p *Pool) render(ctx context.Context, job *model.ReportJob) error {
	var params service.ReportParams
	if err := json.Unmarshal([]byte(job.Params), &params); err != nil {
		return fmt.Errorf("failed to decode report parameters: %w", err)
	}

	records, err := p.assets.ExportRecords(ctx, params.Filters)
	if err != nil {
		return fmt.Errorf("failed to collect assets: %w", err)
	}

	path := filepath.Join(p.outputDir, job.ID.String()+"."+job.Format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	switch job.Format {
	case model.ReportFormatXLSX:
		err = spreadsheet.WriteAssetsXLSX(f, records, params.Fields)
	case model.ReportFormatCSV:
		err = spreadsheet.WriteAssetsCSV(f, records, params.Fields)
	default:
		err = fmt.Errorf("unsupported report format %q", job.Format)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}

	job.FileName = fmt.Sprintf("assets_%s.%s", time.Now().Format("20060102_150405"), job.Format)
	job.FilePath = path
	return nil
}
