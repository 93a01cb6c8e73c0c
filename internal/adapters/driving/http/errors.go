package http

import "errors"

var (
	// ErrMissingPipelineService is returned when the pipeline service is not provided.
	ErrMissingPipelineService = errors.New("http: pipeline service is required")

	// ErrMissingReportService is returned when the report service is not provided.
	ErrMissingReportService = errors.New("http: report service is required")

	// ErrNoFiles is returned when no input files are configured.
	ErrNoFiles = errors.New("http: at least one input file is required")
)
