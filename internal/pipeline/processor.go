// Package pipeline coordinates the per-report processing flow: extraction,
// clinical classification, persistence, and failure diagnosis.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/diagnose"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/interpret"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

// Processor runs extraction over stored reports and persists the outcome.
type Processor struct {
	logger     *slog.Logger
	reg        *registry.Registry
	extractor  *extract.Extractor
	reports    repository.LabReportRepository
	results    repository.NutrientResultRepository
	minResults int
}

func NewProcessor(
	logger *slog.Logger,
	reg *registry.Registry,
	extractor *extract.Extractor,
	reports repository.LabReportRepository,
	results repository.NutrientResultRepository,
	minResults int,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if minResults < 0 {
		minResults = 0
	}
	return &Processor{
		logger:     logger,
		reg:        reg,
		extractor:  extractor,
		reports:    reports,
		results:    results,
		minResults: minResults,
	}
}

// ProcessReport loads a stored report, extracts values from its text, and
// persists findings plus status. A sparse or empty outcome attaches a
// diagnosis to the report rather than failing it.
func (p *Processor) ProcessReport(ctx context.Context, reportID uuid.UUID) error {
	report, err := p.reports.GetByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("load report %s: %w", reportID, err)
	}
	if err := p.reports.UpdateStatus(ctx, reportID, constants.ReportStatusRunning); err != nil {
		return fmt.Errorf("mark report running: %w", err)
	}

	res := p.extractor.Extract(report.RawText)
	findings := interpret.Classify(p.reg, res)
	rows := make([]*entity.NutrientResult, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, &entity.NutrientResult{
			NutrientKey: f.Key,
			Value:       f.Value,
			Unit:        f.Unit,
			Confidence:  f.Confidence,
			Strategy:    f.Strategy,
			Status:      f.Status,
			NormalLow:   f.Normal.Low,
			NormalHigh:  f.Normal.High,
		})
	}
	if err := p.results.ReplaceForReport(ctx, reportID, rows); err != nil {
		_ = p.reports.UpdateStatus(ctx, reportID, constants.ReportStatusFailed)
		return fmt.Errorf("store results for report %s: %w", reportID, err)
	}

	status := constants.ReportStatusExtracted
	if res.Len() == 0 {
		status = constants.ReportStatusEmpty
	}
	if res.Len() < p.minResults {
		d := diagnose.Run(report.RawText, res)
		if err := p.attachDiagnosis(ctx, reportID, d); err != nil {
			p.logger.Warn("failed to attach diagnosis", "report_id", reportID, "error", err)
		}
	}
	if err := p.reports.UpdateStatus(ctx, reportID, status); err != nil {
		return fmt.Errorf("mark report %s: %w", status, err)
	}
	p.logger.Info("report processed",
		slog.String("report_id", reportID.String()),
		slog.Int("values", res.Len()),
		slog.String("status", string(status)))
	return nil
}

func (p *Processor) attachDiagnosis(ctx context.Context, reportID uuid.UUID, d diagnose.Diagnosis) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode diagnosis: %w", err)
	}
	return p.reports.AttachDiagnosis(ctx, reportID, string(d.TextQuality), string(body))
}
