package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// Ensure SyncRunStore implements the interface.
var _ driven.SyncRunStore = (*SyncRunStore)(nil)

// SyncRunStore is an in-memory implementation of driven.SyncRunStore.
type SyncRunStore struct {
	mu   sync.RWMutex
	runs []domain.SyncRun
}

// NewSyncRunStore creates a new in-memory sync run store.
func NewSyncRunStore() *SyncRunStore {
	return &SyncRunStore{}
}

// Record appends a completed run.
func (s *SyncRunStore) Record(_ context.Context, run domain.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// ListBySource returns a source's runs, newest first.
func (s *SyncRunStore) ListBySource(_ context.Context, sourceID string) ([]domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.SyncRun
	for _, run := range s.runs {
		if run.SourceID == sourceID {
			result = append(result, run)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.After(result[j].StartedAt) })
	return result, nil
}
