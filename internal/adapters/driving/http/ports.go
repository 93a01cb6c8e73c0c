package http

import (
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

// Ports aggregates the driving ports and inputs required by the HTTP server.
type Ports struct {
	// Pipeline runs ingestion and reports for each request.
	Pipeline driving.PipelineService

	// Reports lists the registered reports.
	Reports driving.ReportService

	// Files are the input files read on every request.
	Files []string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	if p.Reports == nil {
		return ErrMissingReportService
	}
	if len(p.Files) == 0 {
		return ErrNoFiles
	}
	return nil
}
