package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.RunHistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.RunHistoryStore.
// Used in tests and when the history database cannot be opened.
type HistoryStore struct {
	mu   sync.RWMutex
	runs []domain.RunRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record appends a run to the history.
func (s *HistoryStore) Record(_ context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run has no id", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	run.Files = slices.Clone(run.Files)
	run.Reports = slices.Clone(run.Reports)
	s.runs = append(s.runs, run)
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.runs)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.RunRecord, 0, n)
	for i := len(s.runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}
