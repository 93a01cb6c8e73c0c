package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of runs listed when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService reads past runs from a history store.
type HistoryService struct {
	store driven.RunHistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.RunHistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit runs, newest first. A non-positive limit
// selects DefaultHistoryLimit.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.store == nil {
		return nil, errors.New("history: store not configured")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.Recent(ctx, limit)
}
