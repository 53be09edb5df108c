package async

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/pipeline"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

func newQueueFixture(t *testing.T, opts ...Option) (*ProcessorQueue, *repository.MemoryStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := registry.New(logger)
	require.NoError(t, err)
	store := repository.NewMemoryStore()
	proc := pipeline.NewProcessor(logger, reg, extract.New(reg, extract.WithLogger(logger)), store, store, 0)
	return NewProcessorQueue(proc, logger, opts...), store
}

func enqueueReport(t *testing.T, q *ProcessorQueue, store *repository.MemoryStore, text string) uuid.UUID {
	t.Helper()
	rep, _, err := store.UpsertByHash(context.Background(), &entity.LabReport{
		SourcePath:  "queued.txt",
		Filename:    "queued.txt",
		ContentHash: []byte(text),
		RawText:     text,
		Status:      constants.ReportStatusQueued,
	})
	require.NoError(t, err)
	require.NoError(t, q.Enqueue(context.Background(), Job{ReportID: rep.ID, SubmittedAt: time.Now()}))
	return rep.ID
}

func TestProcessorQueue_ProcessesEnqueuedReports(t *testing.T) {
	q, store := newQueueFixture(t, WithWorkers(2), WithQueueSize(8))

	id := enqueueReport(t, q, store, "Vitamin D: 32 ng/mL\nGlucose: 90 mg/dL")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	rep, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, constants.ReportStatusExtracted, rep.Status)

	rows, err := store.ListByReport(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestProcessorQueue_DrainsBacklogOnShutdown(t *testing.T) {
	q, store := newQueueFixture(t, WithWorkers(1), WithQueueSize(16))

	ids := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		text := "Hemoglobin: 13." + string(rune('0'+i)) + " g/dL"
		ids = append(ids, enqueueReport(t, q, store, text))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	for _, id := range ids {
		rep, err := store.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, constants.ReportStatusExtracted, rep.Status, "report %s", id)
	}
}

func TestProcessorQueue_EnqueueAfterShutdownIsNoop(t *testing.T) {
	q, _ := newQueueFixture(t, WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)
	// A second shutdown must be safe too.
	q.Shutdown(ctx)

	err := q.Enqueue(context.Background(), Job{ReportID: uuid.New()})
	assert.NoError(t, err)
}
