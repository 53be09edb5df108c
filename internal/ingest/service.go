// Package ingest turns report text files on disk into queued lab reports.
package ingest

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/async"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/common"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

// Service handles ingestion business logic.
type Service struct {
	reports repository.LabReportRepository
	queue   async.Queue
	logger  *slog.Logger
}

func NewService(reports repository.LabReportRepository, q async.Queue, logger *slog.Logger) *Service {
	return &Service{
		reports: reports,
		queue:   q,
		logger:  logger,
	}
}

// IngestionResult reports what happened to one submitted file.
type IngestionResult struct {
	ReportID  uuid.UUID `json:"report_id"`
	Path      string    `json:"path"`
	Duplicate bool      `json:"duplicate"`
	Queued    bool      `json:"queued"`
}

// IngestFile reads one report text file, deduplicates it by content hash,
// and queues extraction for new content.
func (s *Service) IngestFile(ctx context.Context, path string, force bool) (IngestionResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return IngestionResult{}, common.InvalidArgumentError("path is required")
	}
	if _, ok := constants.AllowedExtensions[constants.NormalizeExt(filepath.Ext(path))]; !ok {
		return IngestionResult{}, common.InvalidArgumentErrorf("unsupported file extension for %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("failed to read report file", "path", path, "error", err)
		return IngestionResult{}, fmt.Errorf("read report file: %w", err)
	}
	hash := sha256.Sum256(raw)

	report := &entity.LabReport{
		SourcePath:  path,
		Filename:    filepath.Base(path),
		ContentHash: hash[:],
		RawText:     string(raw),
		Status:      constants.ReportStatusQueued,
	}
	stored, duplicate, err := s.reports.UpsertByHash(ctx, report)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("store report: %w", err)
	}

	res := IngestionResult{ReportID: stored.ID, Path: path, Duplicate: duplicate}
	if duplicate && !force {
		s.logger.Info("skipping duplicate report", "path", path, "report_id", stored.ID)
		return res, nil
	}
	if err := s.queue.Enqueue(ctx, async.Job{
		ReportID:    stored.ID,
		Force:       force,
		SubmittedAt: time.Now().UTC(),
	}); err != nil {
		return res, fmt.Errorf("queue report: %w", err)
	}
	res.Queued = true
	return res, nil
}

// Run consumes watcher events until ctx is cancelled. Errors on individual
// files are logged, never fatal.
func (s *Service) Run(ctx context.Context, cfg WatchConfig) error {
	evCh, errCh, err := StartWatcher(ctx, cfg)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-evCh:
			if !ok {
				return nil
			}
			if _, err := s.IngestFile(ctx, path, false); err != nil {
				s.logger.Error("failed to ingest file", "path", path, "error", err)
			}
		case werr, ok := <-errCh:
			if ok && werr != nil {
				s.logger.Warn("watcher reported error", "error", werr)
			}
		}
	}
}
