package tui

import "errors"

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("tui: pipeline service is required")

// ErrNoFiles is returned when the browser has no input files to load.
var ErrNoFiles = errors.New("tui: at least one input file is required")

// ErrNoReports is returned when no report was requested.
var ErrNoReports = errors.New("tui: at least one report is required")
