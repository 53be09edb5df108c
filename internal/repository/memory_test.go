package repository

import (
	"context"
	"crypto/sha256"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
)

func TestMemoryStore_UpsertByHashConcurrent(t *testing.T) {
	store := NewMemoryStore()
	hash := sha256.Sum256([]byte("Vitamin D: 28 ng/mL"))

	const uploads = 16
	var (
		wg       sync.WaitGroup
		inserted atomic.Int32
	)
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup, err := store.UpsertByHash(context.Background(), &entity.LabReport{
				SourcePath:  "/data/panel.txt",
				Filename:    "panel.txt",
				ContentHash: hash[:],
				RawText:     "Vitamin D: 28 ng/mL",
				Status:      constants.ReportStatusQueued,
			})
			assert.NoError(t, err)
			if !dup {
				inserted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), inserted.Load())
	reports, err := store.List(context.Background(), uploads)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}
