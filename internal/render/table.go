package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/ecoreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure TableRenderer implements the interface.
var _ driven.Renderer = (*TableRenderer)(nil)

// TableRenderer writes a bordered terminal table with a row index column.
type TableRenderer struct {
	color domain.ColorMode
	theme *styles.Theme
}

// NewTable creates a table renderer. A nil theme selects the default.
func NewTable(color domain.ColorMode, theme *styles.Theme) *TableRenderer {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	return &TableRenderer{color: color, theme: theme}
}

// Name returns the output format name.
func (t *TableRenderer) Name() string {
	return domain.FormatTable.String()
}

// Render writes res as a styled table.
func (t *TableRenderer) Render(w io.Writer, res domain.ReportResult) error {
	r := newRenderer(w, ColorEnabled(t.color, w))
	st := styles.NewStyles(t.theme, r)

	tbl := buildTable(res, st).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.BorderLine)

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// buildTable fills a lipgloss table with the indexed rows of res.
func buildTable(res domain.ReportResult, st *styles.Styles) *table.Table {
	headers, rows := indexed(res.Columns, textRows(res))
	numeric := append([]bool{true}, numericColumns(res)...)

	return table.New().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.Header
			case col == 0:
				return st.Muted.Padding(0, 1).Align(lipgloss.Right)
			case col < len(numeric) && numeric[col]:
				return st.Number
			default:
				return st.Cell
			}
		})
}
