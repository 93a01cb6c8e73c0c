package driven

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// Source reads one input file into observations.
// Each source handles a set of file extensions (e.g., ".csv", ".xlsx").
type Source interface {
	// Name returns the source name for logging.
	Name() string

	// Extensions returns the lower-case file extensions this source reads,
	// including the leading dot.
	Extensions() []string

	// Read parses the file at path and returns its observations in row order.
	// All failures are wrapped in a *domain.FileError naming path.
	Read(ctx context.Context, path string) ([]domain.Observation, error)
}

// SourceRegistry selects the source for an input file.
type SourceRegistry interface {
	// Register adds a source for each of its extensions.
	Register(source Source)

	// For returns the source for path, falling back to the default source
	// when the extension is unknown.
	For(path string) Source

	// Extensions returns every registered extension, sorted.
	Extensions() []string
}
