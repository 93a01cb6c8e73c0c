package driven

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// Report transforms a dataset into ordered output rows.
// Reports are pure: they never mutate the dataset and return identical
// rows for identical input.
type Report interface {
	// Name returns the identifier the report is requested by.
	Name() string

	// Description returns a one-line summary for listings.
	Description() string

	// Columns returns the fields of every row, in display order.
	Columns() []string

	// Generate computes the report rows.
	// An empty dataset yields an empty result, not an error.
	Generate(ctx context.Context, ds *domain.Dataset) ([]domain.Row, error)
}

// ReportBuilder creates a report instance.
type ReportBuilder func() (Report, error)

// ReportRegistry resolves report identifiers to report instances.
type ReportRegistry interface {
	// Register adds a report builder under the given identifier.
	Register(name string, builder ReportBuilder)

	// Has returns true if the identifier is registered.
	Has(name string) bool

	// Names returns all registered identifiers, sorted.
	Names() []string

	// Build creates the report registered under name.
	Build(name string) (Report, error)

	// Resolve builds a report for each name, preserving order and duplicates.
	// Resolution stops at the first unknown name and returns no reports.
	Resolve(names []string) ([]Report, error)
}
