package driven

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// RunHistoryStore persists the metadata of past pipeline runs.
type RunHistoryStore interface {
	// Record appends a run to the history.
	Record(ctx context.Context, run domain.RunRecord) error

	// Recent returns up to limit runs, newest first.
	// A non-positive limit returns every run.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
