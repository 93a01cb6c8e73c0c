package driving

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// RunSummary describes one complete pipeline execution.
type RunSummary struct {
	// RunID identifies the run in the history.
	RunID string

	// Files is the number of input files read.
	Files int

	// Countries is the number of distinct countries in the dataset.
	Countries int

	// Records is the total number of records ingested.
	Records int

	// Results holds one entry per requested report, in request order.
	Results []domain.ReportResult
}

// Failed returns the number of reports that could not be generated.
func (s RunSummary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// PipelineService runs the whole resolve, ingest, report sequence.
type PipelineService interface {
	// Run validates the inputs, resolves the reports, loads the files and
	// generates every report. Resolution or ingestion failures halt the run
	// before any report executes. An empty dataset returns domain.ErrNoData.
	Run(ctx context.Context, files, reports []string) (*RunSummary, error)
}
