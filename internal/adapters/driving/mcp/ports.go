package mcp

import (
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Reports lists the registered reports.
	Reports driving.ReportService

	// Pipeline runs ingestion and reports for a tool call.
	Pipeline driving.PipelineService

	// Files are the only input files tool calls may read.
	Files []string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Reports == nil {
		return ErrMissingReportService
	}
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	if len(p.Files) == 0 {
		return ErrNoFiles
	}
	return nil
}
