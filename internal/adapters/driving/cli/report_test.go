package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

func gdpResult() domain.ReportResult {
	return domain.ReportResult{
		Name:    "average-gdp",
		Columns: []string{"country", "avg_gdp"},
		Rows: []domain.Row{
			{"country": "Japan", "avg_gdp": 5000000.0},
			{"country": "Chile", "avg_gdp": 48.5},
		},
	}
}

func summaryOf(results ...domain.ReportResult) *driving.RunSummary {
	return &driving.RunSummary{Files: 1, Countries: 2, Records: 4, Results: results}
}

func TestReportCmd_RequiresInputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no files", []string{"report", "-r", "average-gdp"}},
		{"no reports", []string{"report", "-f", "a.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, p, _ := testServices()

			_, _, err := execute(t, svc, tt.args...)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, p.files, "pipeline should not run")
		})
	}
}

func TestReportCmd_PassesFilesAndReportsInOrder(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(gdpResult())

	_, _, err := execute(t, svc, "report",
		"--files", "a.csv", "-f", "b.csv,c.xlsx",
		"-r", "continent-population", "--report", "average-gdp")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv", "c.xlsx"}, p.files)
	assert.Equal(t, []string{"continent-population", "average-gdp"}, p.reports)
}

func TestReportCmd_Markdown(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(gdpResult())

	stdout, stderr, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp", "--format", "markdown")

	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.True(t, strings.HasPrefix(stdout, "--- Report: average-gdp ---\n"), stdout)
	assert.Contains(t, stdout, "| 1 | Japan   | 5000000.00 |")
	assert.Contains(t, stdout, "| 2 | Chile   |      48.50 |")
}

func TestReportCmd_TableIsDefault(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(gdpResult())

	stdout, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp")

	require.NoError(t, err)
	assert.Contains(t, stdout, "--- Report: average-gdp ---")
	assert.Contains(t, stdout, "Japan")
	assert.NotContains(t, stdout, "\x1b[", "non-terminal output must not be coloured")
}

func TestReportCmd_JSONHasNoHeading(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(gdpResult())

	stdout, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp", "--format", "json")

	require.NoError(t, err)
	assert.NotContains(t, stdout, "--- Report")

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "average-gdp", doc["report"])
	assert.NotEmpty(t, doc["run_id"])
}

func TestReportCmd_JSONUsesRecordedRunID(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(gdpResult())
	p.summary.RunID = "run-42"

	stdout, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp", "--format", "json")

	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "run-42", doc["run_id"])
}

func TestReportCmd_FormatFromSettings(t *testing.T) {
	svc, p, settings := testServices()
	settings.settings.Output.Format = domain.FormatCSV
	p.summary = summaryOf(gdpResult())

	stdout, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp")

	require.NoError(t, err)
	assert.Equal(t, "country,avg_gdp\nJapan,5000000.00\nChile,48.50\n", stdout)
}

func TestReportCmd_NoData(t *testing.T) {
	svc, p, _ := testServices()
	p.err = fmt.Errorf("%w: 1 files contained no rows", domain.ErrNoData)

	stdout, _, err := execute(t, svc, "report", "-f", "empty.csv", "-r", "average-gdp")

	require.NoError(t, err)
	assert.Equal(t, "No data to process.\n", stdout)
}

func TestReportCmd_IngestionErrorHalts(t *testing.T) {
	svc, p, _ := testServices()
	p.err = &domain.FileError{Path: "missing.csv", Err: domain.ErrFileNotFound}

	stdout, _, err := execute(t, svc, "report", "-f", "missing.csv", "-r", "average-gdp")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.Empty(t, stdout)
}

func TestReportCmd_FailedAndEmptyReports(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(
		domain.ReportResult{Name: "broken", Err: fmt.Errorf("%w: boom", domain.ErrReportFailed)},
		domain.ReportResult{Name: "continent-population", Columns: []string{"continent"}},
		gdpResult(),
	)

	stdout, stderr, err := execute(t, svc, "report", "-f", "a.csv",
		"-r", "broken,continent-population,average-gdp", "--format", "markdown")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReportFailed)
	assert.Contains(t, err.Error(), "1 of 3 reports failed")
	assert.Contains(t, stderr, "Error generating report broken: report generation failed: boom")
	assert.Contains(t, stdout, "Report continent-population has no data.")
	assert.Contains(t, stdout, "--- Report: average-gdp ---")
}

func TestReportCmd_UnsupportedFormat(t *testing.T) {
	svc, p, _ := testServices()

	_, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp", "--format", "pdf")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Nil(t, p.files)
}

func TestReportCmd_XLSXRequiresOutput(t *testing.T) {
	svc, _, _ := testServices()

	_, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp", "--format", "xlsx")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "requires --output")
}

func TestReportCmd_XLSXOutput(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(gdpResult())
	out := filepath.Join(t.TempDir(), "summary.xlsx")

	_, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp", "--format", "xlsx", "-o", out)
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"average-gdp"}, f.GetSheetList())
	rows, err := f.GetRows("average-gdp")
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "avg_gdp"}, rows[0])
	assert.Equal(t, "Japan", rows[1][0])
}

func TestReportCmd_OutputFile(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(gdpResult())
	out := filepath.Join(t.TempDir(), "report.csv")

	stdout, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp", "--format", "csv", "-o", out)

	require.NoError(t, err)
	assert.Empty(t, stdout)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "country,avg_gdp\nJapan,5000000.00\nChile,48.50\n", string(data))
}

func TestReportCmd_OutputFileError(t *testing.T) {
	svc, p, _ := testServices()
	p.summary = summaryOf(gdpResult())
	out := filepath.Join(t.TempDir(), "missing-dir", "report.csv")

	_, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "average-gdp", "--format", "csv", "-o", out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}

func TestReportCmd_NoPipeline(t *testing.T) {
	_, _, err := execute(t, &Services{}, "report", "-f", "a.csv", "-r", "average-gdp")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline service not configured")
}

func TestHasHeading(t *testing.T) {
	tests := []struct {
		format   domain.OutputFormat
		expected bool
	}{
		{domain.FormatTable, true},
		{domain.FormatMarkdown, true},
		{domain.FormatJSON, false},
		{domain.FormatYAML, false},
		{domain.FormatCSV, false},
		{domain.FormatXLSX, false},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, hasHeading(tt.format))
		})
	}
}

func TestReportCmd_PipelineErrorPassesThrough(t *testing.T) {
	svc, p, _ := testServices()
	p.err = fmt.Errorf("%w: %q", domain.ErrUnknownReport, "nope")

	_, _, err := execute(t, svc, "report", "-f", "a.csv", "-r", "nope")

	assert.True(t, errors.Is(err, domain.ErrUnknownReport))
	assert.Contains(t, err.Error(), `"nope"`)
}
