package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ecoreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure MarkdownRenderer implements the interface.
var _ driven.Renderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer writes a GitHub pipe table. Output is never coloured.
type MarkdownRenderer struct{}

// NewMarkdown creates a markdown renderer.
func NewMarkdown() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Name returns the output format name.
func (m *MarkdownRenderer) Name() string {
	return domain.FormatMarkdown.String()
}

// Render writes res as a pipe table.
func (m *MarkdownRenderer) Render(w io.Writer, res domain.ReportResult) error {
	st := styles.NewStyles(nil, newRenderer(w, false))

	tbl := buildTable(res, st).
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false)

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
