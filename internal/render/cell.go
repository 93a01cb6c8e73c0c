package render

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// IndexHeader is the header of the 1-based row index column added by the
// table and markdown renderers.
const IndexHeader = "#"

// FormatCell renders a report value for text output.
// Floats use two decimals; integers and strings are written as-is.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

// isNumeric reports whether a value should be right-aligned.
func isNumeric(v any) bool {
	switch v.(type) {
	case float64, int64, int:
		return true
	default:
		return false
	}
}

// textRows formats every row of res in column order.
func textRows(res domain.ReportResult) [][]string {
	out := make([][]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		cells := make([]string, len(res.Columns))
		for i, col := range res.Columns {
			cells[i] = FormatCell(row[col])
		}
		out = append(out, cells)
	}
	return out
}

// indexed prepends the 1-based row index to every row and header.
func indexed(columns []string, rows [][]string) ([]string, [][]string) {
	headers := append([]string{IndexHeader}, columns...)
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string{strconv.Itoa(i + 1)}, row...)
	}
	return headers, out
}

// numericColumns marks the columns whose first non-nil value is a number.
func numericColumns(res domain.ReportResult) []bool {
	numeric := make([]bool, len(res.Columns))
	for i, col := range res.Columns {
		for _, row := range res.Rows {
			if v, ok := row[col]; ok && v != nil {
				numeric[i] = isNumeric(v)
				break
			}
		}
	}
	return numeric
}
