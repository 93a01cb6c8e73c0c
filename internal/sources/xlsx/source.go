// Package xlsx reads the first sheet of an Excel workbook into economic
// observations. The first row is the header; column rules match the CSV
// source.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/logger"
	"github.com/custodia-labs/ecoreport/internal/sources/rows"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// Source reads .xlsx workbooks.
type Source struct{}

// New creates a workbook source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "xlsx"
}

// Extensions returns the handled file extensions.
func (s *Source) Extensions() []string {
	return []string{".xlsx", ".xlsm"}
}

// Read parses the first sheet of the workbook at path.
// Cells are read raw so numbers are not affected by display formats.
// Trailing empty cells, which the file format omits, read as empty values.
func (s *Source) Read(ctx context.Context, path string) ([]domain.Observation, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.FileError{Path: path, Err: domain.ErrFileNotFound}
		}
		return nil, readErr(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, readErr(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	if len(sheets) > 1 {
		logger.Debug("%s has %d sheets, reading %q", path, len(sheets), sheets[0])
	}

	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, readErr(path, err)
	}
	if len(grid) == 0 {
		return nil, nil
	}

	parser := rows.NewParser(grid[0])
	width := len(parser.Header())
	var out []domain.Observation

	for i, row := range grid[1:] {
		if err := ctx.Err(); err != nil {
			return nil, readErr(path, err)
		}
		if blank(row) {
			continue
		}
		for len(row) < width {
			row = append(row, "")
		}

		// header is row 1
		o, err := parser.Parse(i+2, row)
		if err != nil {
			return nil, &domain.FileError{Path: path, Err: err}
		}
		out = append(out, o)
	}

	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readErr(path string, err error) error {
	return &domain.FileError{Path: path, Err: fmt.Errorf("%w: %w", domain.ErrFileRead, err)}
}
