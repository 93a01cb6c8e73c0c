package driving

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// HistoryService exposes past pipeline runs.
type HistoryService interface {
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
