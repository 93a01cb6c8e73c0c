package render

import (
	"encoding/csv"
	"io"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure CSVRenderer implements the interface.
var _ driven.Renderer = (*CSVRenderer)(nil)

// CSVRenderer writes a header row followed by the report rows.
type CSVRenderer struct{}

// NewCSV creates a CSV renderer.
func NewCSV() *CSVRenderer {
	return &CSVRenderer{}
}

// Name returns the output format name.
func (c *CSVRenderer) Name() string {
	return domain.FormatCSV.String()
}

// Render writes res as CSV.
func (c *CSVRenderer) Render(w io.Writer, res domain.ReportResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(textRows(res)); err != nil {
		return err
	}
	return cw.Error()
}
