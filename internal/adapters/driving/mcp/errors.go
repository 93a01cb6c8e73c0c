// Package mcp provides an MCP (Model Context Protocol) server adapter for ecoreport.
// It lets AI assistants list the registered reports and run them over local files.
package mcp

import "errors"

var (
	// ErrMissingReportService is returned when the report service is not provided.
	ErrMissingReportService = errors.New("mcp: report service is required")

	// ErrMissingPipelineService is returned when the pipeline service is not provided.
	ErrMissingPipelineService = errors.New("mcp: pipeline service is required")

	// ErrNoFiles is returned when the server is started without input files.
	ErrNoFiles = errors.New("mcp: at least one input file is required")

	// ErrFileNotServed is returned when a tool call names a file outside the
	// files the server was started with.
	ErrFileNotServed = errors.New("mcp: file is not served")
)
