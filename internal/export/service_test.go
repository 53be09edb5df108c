package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

func TestExportReportXLSX(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryStore()
	svc := NewService(store, store, logger)
	ctx := context.Background()

	rep, _, err := store.UpsertByHash(ctx, &entity.LabReport{
		SourcePath:  "/data/panel.txt",
		Filename:    "panel.txt",
		ContentHash: []byte("panel"),
		RawText:     "Vitamin D: 28 ng/mL",
		Status:      constants.ReportStatusExtracted,
	})
	require.NoError(t, err)
	require.NoError(t, store.ReplaceForReport(ctx, rep.ID, []*entity.NutrientResult{
		{NutrientKey: "vitamin_d", Value: 28, Unit: "ng/mL", Confidence: 0.9,
			Strategy: constants.StrategyDirect, Status: constants.ValueStatusLow,
			NormalLow: 30, NormalHigh: 100},
	}))

	body, err := svc.ExportReportXLSX(ctx, rep.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nutrient", rows[0][0])
	assert.Equal(t, "vitamin_d", rows[1][0])
	assert.Equal(t, "28", rows[1][1])
	assert.Equal(t, "ng/mL", rows[1][2])
	assert.Equal(t, string(constants.ValueStatusLow), rows[1][3])
	assert.Equal(t, "/data/panel.txt", rows[1][8])
}

func TestExportReportXLSX_MissingReport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryStore()
	svc := NewService(store, store, logger)

	_, err := svc.ExportReportXLSX(context.Background(), uuid.New())
	require.Error(t, err)
}
