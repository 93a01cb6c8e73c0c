package domain

import "time"

// RunRecord is the history entry for one pipeline run. It holds run
// metadata only, never the ingested rows.
type RunRecord struct {
	// ID uniquely identifies the run.
	ID string

	// StartedAt is when the run started.
	StartedAt time.Time

	// EndedAt is when the run completed.
	EndedAt time.Time

	// Files are the input paths, in the order given.
	Files []string

	// Reports are the requested report names, in the order given.
	Reports []string

	// Records is the number of records ingested.
	Records int

	// Countries is the number of distinct countries ingested.
	Countries int

	// Failed is the number of reports that could not be generated.
	Failed int

	// Error is set when the run halted before reports executed.
	Error string
}

// Success returns true if the run completed and every report generated.
func (r RunRecord) Success() bool {
	return r.Error == "" && r.Failed == 0
}

// Duration returns how long the run took.
func (r RunRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
