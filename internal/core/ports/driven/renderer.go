package driven

import (
	"io"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// Renderer presents a report result. Renderers never alter the data.
type Renderer interface {
	// Name returns the output format name.
	Name() string

	// Render writes one report result to w.
	Render(w io.Writer, res domain.ReportResult) error
}

// BatchRenderer is implemented by renderers that emit every result of a
// run as one document (e.g., a workbook with a sheet per report).
type BatchRenderer interface {
	Renderer

	// RenderAll writes all results to w.
	RenderAll(w io.Writer, results []domain.ReportResult) error
}
