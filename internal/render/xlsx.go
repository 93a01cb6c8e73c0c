package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Excel limits sheet names to 31 characters and forbids some punctuation.
const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// Ensure XLSXRenderer implements the interface.
var _ driven.BatchRenderer = (*XLSXRenderer)(nil)

// XLSXRenderer writes a workbook with one sheet per report.
// Numbers are stored as numeric cells so they stay usable in formulas.
type XLSXRenderer struct{}

// NewXLSX creates an Excel renderer.
func NewXLSX() *XLSXRenderer {
	return &XLSXRenderer{}
}

// Name returns the output format name.
func (x *XLSXRenderer) Name() string {
	return domain.FormatXLSX.String()
}

// Render writes a single-sheet workbook.
func (x *XLSXRenderer) Render(w io.Writer, res domain.ReportResult) error {
	return x.RenderAll(w, []domain.ReportResult{res})
}

// RenderAll writes every result as its own sheet, in order.
func (x *XLSXRenderer) RenderAll(w io.Writer, results []domain.ReportResult) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	used := make(map[string]bool)
	for i, res := range results {
		sheet := uniqueSheetName(res.Name, used)
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			_, err = f.NewSheet(sheet)
		}
		if err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, res, bold); err != nil {
			return fmt.Errorf("writing sheet %q: %w", sheet, err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

// writeSheet fills one sheet with a bold header and the report rows.
// A failed report gets a single error cell instead.
func writeSheet(f *excelize.File, sheet string, res domain.ReportResult, headerStyle int) error {
	if res.Failed() {
		return f.SetSheetRow(sheet, "A1", &[]any{"error", res.Err.Error()})
	}

	header := make([]any, len(res.Columns))
	for i, col := range res.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(res.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(res.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for i, row := range res.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(res.Columns))
		for j, col := range res.Columns {
			values[j] = row[col]
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// uniqueSheetName makes a valid sheet name not yet in used.
func uniqueSheetName(name string, used map[string]bool) string {
	base := sheetNameReplacer.Replace(name)
	if base == "" {
		base = "report"
	}
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}

	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf("-%d", n)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		candidate = trimmed + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
