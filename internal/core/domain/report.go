package domain

// Row is one report output row: field name to a string, float64 or int64 value.
// The set of fields is report-specific.
type Row map[string]any

// ReportResult is the outcome of running one report.
type ReportResult struct {
	// Name is the report identifier, e.g. "average-gdp".
	Name string

	// Columns lists the row fields in display order.
	Columns []string

	// Rows is the ordered report output.
	Rows []Row

	// Err is set when the report failed to generate.
	// A failed report never has rows.
	Err error
}

// Failed returns true if the report could not be generated.
func (r ReportResult) Failed() bool {
	return r.Err != nil
}

// IsEmpty returns true if the report generated no rows.
func (r ReportResult) IsEmpty() bool {
	return len(r.Rows) == 0
}

// ReportInfo describes a registered report type.
type ReportInfo struct {
	// Name is the identifier used to request the report.
	Name string

	// Description is a one-line summary for listings.
	Description string
}
