// Package messages defines Bubbletea message types for the report browser.
package messages

import (
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

// RunRequested asks the app to (re)run the pipeline.
type RunRequested struct{}

// RunCompleted carries a pipeline outcome back to the model.
// Exactly one of Summary and Err is set.
type RunCompleted struct {
	Summary *driving.RunSummary
	Err     error
}

// ReportSelected is sent when the active report tab changes.
type ReportSelected struct {
	Index int
}
