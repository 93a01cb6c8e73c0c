package domain

const unknownDescription = "Unknown"

// OutputFormat selects how report results are presented.
type OutputFormat string

// Available output formats.
const (
	// FormatTable is a styled terminal table.
	FormatTable OutputFormat = "table"

	// FormatMarkdown is a GitHub-flavoured pipe table.
	FormatMarkdown OutputFormat = "markdown"

	// FormatJSON is one JSON document per report.
	FormatJSON OutputFormat = "json"

	// FormatYAML is one YAML document per report.
	FormatYAML OutputFormat = "yaml"

	// FormatCSV is comma-separated values with a header row.
	FormatCSV OutputFormat = "csv"

	// FormatXLSX is an Excel workbook with one sheet per report.
	FormatXLSX OutputFormat = "xlsx"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTable, FormatMarkdown, FormatJSON, FormatYAML, FormatCSV, FormatXLSX:
		return true
	default:
		return false
	}
}

// RequiresFile returns true if the format cannot be written to a terminal.
func (f OutputFormat) RequiresFile() bool {
	return f == FormatXLSX
}

// AllFormats returns every output format in display order.
func AllFormats() []OutputFormat {
	return []OutputFormat{FormatTable, FormatMarkdown, FormatJSON, FormatYAML, FormatCSV, FormatXLSX}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f OutputFormat) Description() string {
	switch f {
	case FormatTable:
		return "Table (styled terminal output)"
	case FormatMarkdown:
		return "Markdown (GitHub pipe table)"
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	case FormatCSV:
		return "CSV"
	case FormatXLSX:
		return "Excel workbook"
	default:
		return unknownDescription
	}
}

// ColorMode controls terminal styling.
type ColorMode string

// Available colour modes.
const (
	// ColorAuto styles output only when writing to a terminal.
	ColorAuto ColorMode = "auto"

	// ColorAlways always styles output.
	ColorAlways ColorMode = "always"

	// ColorNever never styles output.
	ColorNever ColorMode = "never"
)

// IsValid returns true if the colour mode is recognised.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c ColorMode) String() string {
	return string(c)
}

// OutputSettings holds presentation configuration.
type OutputSettings struct {
	// Format is the default output format.
	Format OutputFormat `validate:"oneof=table markdown json yaml csv xlsx"`

	// Color is the terminal colour mode.
	Color ColorMode `validate:"oneof=auto always never"`
}

// InputSettings holds ingestion configuration.
type InputSettings struct {
	// Delimiter is the field separator for delimited text files.
	Delimiter string `validate:"len=1"`
}

// AppSettings is the aggregate application configuration.
type AppSettings struct {
	Output OutputSettings
	Input  InputSettings

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultAppSettings returns the default configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Output: OutputSettings{
			Format: FormatTable,
			Color:  ColorAuto,
		},
		Input: InputSettings{
			Delimiter: ",",
		},
	}
}

// DelimiterRune returns the delimiter as a rune, defaulting to a comma.
func (s InputSettings) DelimiterRune() rune {
	for _, r := range s.Delimiter {
		return r
	}
	return ','
}
