package driving

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// ReportService resolves and runs reports over a dataset.
type ReportService interface {
	// Available lists every registered report, sorted by name.
	Available() []domain.ReportInfo

	// Resolve validates the requested identifiers and builds the reports.
	// Returns domain.ErrInvalidInput for an empty list and
	// domain.ErrUnknownReport for the first unknown identifier.
	Resolve(names []string) ([]driven.Report, error)

	// Run resolves names and generates each report in order.
	// Resolution errors halt the run. A report that fails is returned with
	// its Err set and the remaining reports still run.
	Run(ctx context.Context, names []string, ds *domain.Dataset) ([]domain.ReportResult, error)
}
