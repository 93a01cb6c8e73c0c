package domain

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNoData", ErrNoData},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrFileNotFound", ErrFileNotFound},
		{"ErrFileRead", ErrFileRead},
		{"ErrMissingColumn", ErrMissingColumn},
		{"ErrRowConversion", ErrRowConversion},
		{"ErrUnknownReport", ErrUnknownReport},
		{"ErrReportFailed", ErrReportFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrUnknownReport(t *testing.T) {
	assert.Equal(t, "unknown report type", ErrUnknownReport.Error())
	assert.False(t, errors.Is(ErrUnknownReport, ErrInvalidInput))
}

func TestFileError(t *testing.T) {
	err := &FileError{Path: "data/2023.csv", Err: ErrFileNotFound}

	assert.Equal(t, "data/2023.csv: file not found", err.Error())
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.True(t, IsIngestionError(err))
}

func TestFileError_WrapsRowError(t *testing.T) {
	_, cause := strconv.Atoi("abc")
	rowErr := &RowError{
		Line:   3,
		Kind:   ErrRowConversion,
		Column: "year",
		Raw:    "country=Chile, year=abc",
		Err:    cause,
	}
	err := &FileError{Path: "a.csv", Err: rowErr}

	assert.ErrorIs(t, err, ErrRowConversion)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.NotErrorIs(t, err, ErrMissingColumn)

	var got *RowError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 3, got.Line)
	assert.Equal(t, "year", got.Column)

	assert.Contains(t, err.Error(), "a.csv")
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), `row conversion error "year"`)
	assert.Contains(t, err.Error(), "{country=Chile, year=abc}")
	assert.Contains(t, err.Error(), "invalid syntax")
}

func TestRowError_WithoutCause(t *testing.T) {
	err := &RowError{Line: 2, Kind: ErrMissingColumn, Column: "continent"}

	assert.Equal(t, `line 2: missing column "continent"`, err.Error())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestIsIngestionError_OtherErrors(t *testing.T) {
	assert.False(t, IsIngestionError(ErrUnknownReport))
	assert.False(t, IsIngestionError(nil))
}
