package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/diagnose"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

func newTestProcessor(t *testing.T, minResults int) (*Processor, *repository.MemoryStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := registry.New(logger)
	require.NoError(t, err)
	store := repository.NewMemoryStore()
	proc := NewProcessor(logger, reg, extract.New(reg, extract.WithLogger(logger)), store, store, minResults)
	return proc, store
}

func storeReport(t *testing.T, store *repository.MemoryStore, text string) uuid.UUID {
	t.Helper()
	rep, dup, err := store.UpsertByHash(context.Background(), &entity.LabReport{
		SourcePath:  "test.txt",
		Filename:    "test.txt",
		ContentHash: []byte(text),
		RawText:     text,
		Status:      constants.ReportStatusQueued,
	})
	require.NoError(t, err)
	require.False(t, dup)
	return rep.ID
}

func TestProcessReport_StoresResults(t *testing.T) {
	proc, store := newTestProcessor(t, 3)
	id := storeReport(t, store, `
Vitamin D: 22 ng/mL
Hemoglobin: 13.5 g/dL
Glucose: 95 mg/dL
Ferritin: 150 ng/mL
`)

	require.NoError(t, proc.ProcessReport(context.Background(), id))

	rep, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, constants.ReportStatusExtracted, rep.Status)
	assert.Nil(t, rep.Diagnosis)

	rows, err := store.ListByReport(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	// ListByReport orders by nutrient key.
	assert.Equal(t, "ferritin", rows[0].NutrientKey)
	assert.Equal(t, "vitamin_d", rows[3].NutrientKey)
	assert.Equal(t, 22.0, rows[3].Value)
	assert.Equal(t, constants.ValueStatusLow, rows[3].Status)
	assert.Equal(t, id, rows[3].ReportID)
	assert.NotEqual(t, uuid.Nil, rows[3].ID)
}

func TestProcessReport_EmptyTextAttachesDiagnosis(t *testing.T) {
	proc, store := newTestProcessor(t, 3)
	id := storeReport(t, store, "   \n  \n")

	require.NoError(t, proc.ProcessReport(context.Background(), id))

	rep, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, constants.ReportStatusEmpty, rep.Status)
	require.NotNil(t, rep.TextQuality)
	assert.Equal(t, string(constants.TextQualityNoText), *rep.TextQuality)
	require.NotNil(t, rep.Diagnosis)

	var d diagnose.Diagnosis
	require.NoError(t, json.Unmarshal([]byte(*rep.Diagnosis), &d))
	assert.Equal(t, constants.TextQualityNoText, d.TextQuality)
	assert.NotEmpty(t, d.PotentialIssues)

	rows, err := store.ListByReport(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestProcessReport_SparseOutcomeDiagnosed(t *testing.T) {
	proc, store := newTestProcessor(t, 3)
	id := storeReport(t, store, "Routine lab report follow-up.\nVitamin D: 25 ng/mL\nAll other panels pending.")

	require.NoError(t, proc.ProcessReport(context.Background(), id))

	rep, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, constants.ReportStatusExtracted, rep.Status)
	require.NotNil(t, rep.Diagnosis)
	require.NotNil(t, rep.TextQuality)
	assert.Equal(t, string(constants.TextQualityGood), *rep.TextQuality)

	rows, err := store.ListByReport(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "vitamin_d", rows[0].NutrientKey)
}

func TestProcessReport_ReprocessReplacesRows(t *testing.T) {
	proc, store := newTestProcessor(t, 0)
	id := storeReport(t, store, "Glucose: 95 mg/dL\nHemoglobin: 13.5 g/dL")

	require.NoError(t, proc.ProcessReport(context.Background(), id))
	require.NoError(t, proc.ProcessReport(context.Background(), id))

	rows, err := store.ListByReport(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestProcessReport_UnknownReport(t *testing.T) {
	proc, _ := newTestProcessor(t, 3)
	err := proc.ProcessReport(context.Background(), uuid.New())
	require.Error(t, err)
}
