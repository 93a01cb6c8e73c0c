// Package tui provides an interactive report browser for ecoreport.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

// Ports aggregates the driving ports and request used by the browser.
type Ports struct {
	// Pipeline runs ingestion and the reports.
	Pipeline driving.PipelineService

	// Files are the input files, read in order.
	Files []string

	// Reports are the report identifiers, shown as tabs in order.
	Reports []string
}

// Validate ensures the pipeline and request are set.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	if len(p.Files) == 0 {
		return ErrNoFiles
	}
	if len(p.Reports) == 0 {
		return ErrNoReports
	}
	return nil
}
