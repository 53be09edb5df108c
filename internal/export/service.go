package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	reports repository.LabReportRepository
	results repository.NutrientResultRepository
	logger  *slog.Logger
}

func NewService(reports repository.LabReportRepository, results repository.NutrientResultRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{reports: reports, results: results, logger: logger}
}

// ExportReportXLSX returns an XLSX workbook (as bytes) with one row per
// extracted nutrient for the given report.
func (s *Service) ExportReportXLSX(ctx context.Context, reportID uuid.UUID) ([]byte, error) {
	start := time.Now()

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	rows, err := s.results.ListByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Results"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Nutrient",
		"Value",
		"Unit",
		"Status",
		"Normal Low",
		"Normal High",
		"Confidence",
		"Strategy",
		"Source File",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	rowIdx := 2
	for _, r := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.NutrientKey)
		write(2, r.Value)
		write(3, r.Unit)
		write(4, string(r.Status))
		write(5, r.NormalLow)
		write(6, r.NormalHigh)
		write(7, r.Confidence)
		write(8, string(r.Strategy))
		write(9, report.SourcePath)
		rowIdx++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 24) // nutrient
	_ = f.SetColWidth(sheet, "B", "C", 12) // value, unit
	_ = f.SetColWidth(sheet, "D", "D", 10) // status
	_ = f.SetColWidth(sheet, "E", "G", 12) // ranges, confidence
	_ = f.SetColWidth(sheet, "H", "H", 14) // strategy
	_ = f.SetColWidth(sheet, "I", "I", 60) // path

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"report_id", reportID.String(),
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
