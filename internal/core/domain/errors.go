package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input,
	// such as an empty file list or report list.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoData indicates ingestion produced an empty dataset.
	ErrNoData = errors.New("no data")

	// ErrUnsupportedFormat indicates an unknown source or output format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Ingestion Errors.

	// ErrFileNotFound indicates an input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileRead indicates an I/O or parse failure while reading a file.
	ErrFileRead = errors.New("file read error")

	// ErrMissingColumn indicates a required column is absent from a row.
	ErrMissingColumn = errors.New("missing column")

	// ErrRowConversion indicates a field failed type coercion.
	ErrRowConversion = errors.New("row conversion error")

	// Report Errors.

	// ErrUnknownReport indicates a requested report identifier is not registered.
	ErrUnknownReport = errors.New("unknown report type")

	// ErrReportFailed indicates a report failed while generating its rows.
	ErrReportFailed = errors.New("report generation failed")
)

// FileError attributes an ingestion failure to an input file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// RowError attributes a failure to one data row of a file.
type RowError struct {
	// Line is the 1-based line (or sheet row) number; the header is line 1.
	Line int

	// Kind is ErrMissingColumn or ErrRowConversion.
	Kind error

	// Column is the column that failed.
	Column string

	// Raw is the row's raw content as column=value pairs.
	Raw string

	// Err is the underlying cause, if any.
	Err error
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("line %d: %v %q", e.Line, e.Kind, e.Column)
	if e.Raw != "" {
		msg += fmt.Sprintf(" in row {%s}", e.Raw)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RowError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsIngestionError returns true if err came from reading input files.
func IsIngestionError(err error) bool {
	var fe *FileError
	return errors.As(err, &fe)
}
