package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eventlens/backend/internal/eventanalytics"
	"github.com/eventlens/backend/internal/workspaceanalytics"
	"github.com/eventlens/backend/pkg/metrics"
	"github.com/eventlens/backend/pkg/queue"
	"github.com/eventlens/backend/pkg/storage"
)

// Processor consumes export jobs: recompute the report, render CSV, upload
// the artifact to S3 and log a pre-signed download URL.
type Processor struct {
	eventSvc     *eventanalytics.Service
	workspaceSvc *workspaceanalytics.Service
	s3           *storage.S3
	queue        *queue.Queue
	logger       *zap.Logger
}

// NewProcessor creates an export processor.
func NewProcessor(eventSvc *eventanalytics.Service, workspaceSvc *workspaceanalytics.Service, s3 *storage.S3, q *queue.Queue, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		eventSvc:     eventSvc,
		workspaceSvc: workspaceSvc,
		s3:           s3,
		queue:        q,
		logger:       logger,
	}
}

// Process executes one export job.
func (p *Processor) Process(ctx context.Context, job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeEventReportExport:
		return p.processEvent(ctx, job)
	case queue.JobTypeWorkspaceReportExport:
		return p.processWorkspace(ctx, job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (p *Processor) processEvent(ctx context.Context, job *queue.Job) error {
	var payload queue.EventReportExportPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	report, err := p.eventSvc.ComprehensiveReport(ctx, payload.EventID)
	if err != nil {
		return fmt.Errorf("compute event report: %w", err)
	}
	body, err := RenderEventReport(report)
	if err != nil {
		return fmt.Errorf("render csv: %w", err)
	}

	key := storage.ExportKey("events", payload.EventID.String(), report.GeneratedAt)
	return p.store(ctx, job.ID, key, body)
}

func (p *Processor) processWorkspace(ctx context.Context, job *queue.Job) error {
	var payload queue.WorkspaceReportExportPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	report, err := p.workspaceSvc.WorkspaceAnalytics(ctx, payload.WorkspaceID, payload.RequestedBy)
	if err != nil {
		return fmt.Errorf("compute workspace report: %w", err)
	}
	body, err := RenderWorkspaceReport(report)
	if err != nil {
		return fmt.Errorf("render csv: %w", err)
	}

	key := storage.ExportKey("workspaces", payload.WorkspaceID.String(), report.GeneratedAt)
	return p.store(ctx, job.ID, key, body)
}

func (p *Processor) store(ctx context.Context, jobID, key string, body []byte) error {
	if _, err := p.s3.UploadExport(ctx, key, body); err != nil {
		return fmt.Errorf("upload export: %w", err)
	}
	url, err := p.s3.PresignedDownloadURL(ctx, key)
	if err != nil {
		return fmt.Errorf("presign download: %w", err)
	}
	p.logger.Info("export completed",
		zap.String("job_id", jobID),
		zap.String("s3_key", key),
		zap.String("download_url", url),
	)
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *Processor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("export worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			metrics.ExportJobProcessed("retried")
			time.Sleep(queue.RetryBackoff)
			continue
		}
		metrics.ExportJobProcessed("ok")
	}
}
