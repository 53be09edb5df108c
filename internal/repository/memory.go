package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/common"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
)

// MemoryStore keeps reports and results in process memory. It backs tests
// and the stateless server mode where no DSN is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*entity.LabReport
	results map[uuid.UUID][]*entity.NutrientResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[uuid.UUID]*entity.LabReport),
		results: make(map[uuid.UUID][]*entity.NutrientResult),
	}
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*entity.LabReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.reports[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *rep
	return &cp, nil
}

func (s *MemoryStore) GetByHash(_ context.Context, hash []byte) (*entity.LabReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByHash(hash)
}

// findByHash requires the caller to hold the lock.
func (s *MemoryStore) findByHash(hash []byte) (*entity.LabReport, error) {
	for _, rep := range s.reports {
		if bytes.Equal(rep.ContentHash, hash) {
			cp := *rep
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *MemoryStore) UpsertByHash(_ context.Context, report *entity.LabReport) (*entity.LabReport, bool, error) {
	// Lookup and insert happen under one write lock so two concurrent
	// uploads of the same content cannot both insert.
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, err := s.findByHash(report.ContentHash); err == nil {
		return existing, true, nil
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now().UTC()
	report.CreatedAt, report.UpdatedAt = now, now
	cp := *report
	s.reports[report.ID] = &cp
	return report, false, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id uuid.UUID, status constants.ReportStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rep, ok := s.reports[id]
	if !ok {
		return common.ErrNotFound
	}
	rep.Status = status
	rep.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) AttachDiagnosis(_ context.Context, id uuid.UUID, quality, diagnosis string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rep, ok := s.reports[id]
	if !ok {
		return common.ErrNotFound
	}
	rep.TextQuality = &quality
	rep.Diagnosis = &diagnosis
	rep.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*entity.LabReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 50
	}
	out := make([]*entity.LabReport, 0, len(s.reports))
	for _, rep := range s.reports {
		cp := *rep
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) ReplaceForReport(_ context.Context, reportID uuid.UUID, results []*entity.NutrientResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	stored := make([]*entity.NutrientResult, 0, len(results))
	for _, res := range results {
		if res.ID == uuid.Nil {
			res.ID = uuid.New()
		}
		res.ReportID = reportID
		res.CreatedAt = now
		cp := *res
		stored = append(stored, &cp)
	}
	s.results[reportID] = stored
	return nil
}

func (s *MemoryStore) ListByReport(_ context.Context, reportID uuid.UUID) ([]*entity.NutrientResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.results[reportID]
	out := make([]*entity.NutrientResult, 0, len(stored))
	for _, res := range stored {
		cp := *res
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NutrientKey < out[j].NutrientKey })
	return out, nil
}

var (
	_ LabReportRepository      = (*MemoryStore)(nil)
	_ NutrientResultRepository = (*MemoryStore)(nil)
)
