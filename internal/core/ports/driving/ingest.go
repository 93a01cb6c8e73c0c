package driving

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// IngestService builds a dataset from input files.
type IngestService interface {
	// Load reads every file in order and returns the combined dataset.
	// The first failure aborts the whole load and no dataset is returned.
	// An empty path list yields an empty dataset.
	Load(ctx context.Context, paths []string) (*domain.Dataset, error)
}
