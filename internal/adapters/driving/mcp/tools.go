package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/logger"
	output "github.com/custodia-labs/ecoreport/internal/render"
)

// ListReportsInput is the input schema for the list_reports tool.
type ListReportsInput struct{}

// ListReportsOutput is the output schema for the list_reports tool.
type ListReportsOutput struct {
	Reports []ReportInfo `json:"reports"`
	Count   int          `json:"count"`
}

// ReportInfo describes one registered report.
type ReportInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RunReportInput is the input schema for the run_report tool.
type RunReportInput struct {
	Files   []string `json:"files,omitempty" jsonschema:"input files to read, a subset of the served files (default all served files)"`
	Reports []string `json:"reports,omitempty" jsonschema:"report names to run (default all registered reports)"`
}

// RunReportOutput is the output schema for the run_report tool.
type RunReportOutput struct {
	RunID       string           `json:"run_id"`
	GeneratedAt string           `json:"generated_at"`
	Files       int              `json:"files"`
	Countries   int              `json:"countries"`
	Records     int              `json:"records"`
	Failed      int              `json:"failed"`
	Reports     []ReportDocument `json:"reports"`
}

// ReportDocument is one report in a run_report result.
type ReportDocument struct {
	Report  string           `json:"report"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Error   string           `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_reports",
		Description: "List the reports that can be generated from economic data files",
	}, s.handleListReports)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_report",
		Description: "Read country economic data files and generate summary reports",
	}, s.handleRunReport)
}

// handleListReports handles the list_reports tool invocation.
func (s *Server) handleListReports(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListReportsInput,
) (*mcp.CallToolResult, ListReportsOutput, error) {
	available := s.ports.Reports.Available()

	out := ListReportsOutput{
		Reports: make([]ReportInfo, len(available)),
		Count:   len(available),
	}
	for i, info := range available {
		out.Reports[i] = ReportInfo{Name: info.Name, Description: info.Description}
	}

	return nil, out, nil
}

// selectFiles maps requested paths onto the served files. An empty request
// selects every served file. Paths outside the served set are refused
// before anything is opened.
func (s *Server) selectFiles(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return s.ports.Files, nil
	}
	files := make([]string, 0, len(requested))
	for _, f := range requested {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotServed, f)
		}
		served, ok := s.served[abs]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFileNotServed, f)
		}
		files = append(files, served)
	}
	return files, nil
}

// handleRunReport handles the run_report tool invocation.
func (s *Server) handleRunReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunReportInput,
) (*mcp.CallToolResult, RunReportOutput, error) {
	files, err := s.selectFiles(input.Files)
	if err != nil {
		logger.Warn("run_report: %v", err)
		return nil, RunReportOutput{}, err
	}

	names := input.Reports
	if len(names) == 0 {
		for _, info := range s.ports.Reports.Available() {
			names = append(names, info.Name)
		}
	}

	summary, err := s.ports.Pipeline.Run(ctx, files, names)

	var runID string
	if summary != nil {
		runID = summary.RunID
	}
	renderer := output.NewJSON(output.ForRun(runID, s.envelope...)...)
	out := RunReportOutput{
		RunID:   renderer.RunID(),
		Files:   len(files),
		Reports: []ReportDocument{},
	}

	switch {
	case errors.Is(err, domain.ErrNoData):
		// Every report over an empty dataset is empty.
		for _, name := range names {
			out.Reports = append(out.Reports, toDocument(renderer.Document(domain.ReportResult{Name: name})))
		}
		out.GeneratedAt = stamp(renderer)
		return nil, out, nil
	case err != nil:
		logger.Warn("run_report: %v", err)
		return nil, RunReportOutput{}, err
	}

	out.Countries = summary.Countries
	out.Records = summary.Records
	out.Failed = summary.Failed()
	for _, res := range summary.Results {
		out.Reports = append(out.Reports, toDocument(renderer.Document(res)))
	}
	out.GeneratedAt = stamp(renderer)

	return nil, out, nil
}

func toDocument(doc output.Document) ReportDocument {
	rows := make([]map[string]any, len(doc.Rows))
	for i, row := range doc.Rows {
		rows[i] = row
	}
	return ReportDocument{
		Report:  doc.Report,
		Columns: doc.Columns,
		Rows:    rows,
		Error:   doc.Error,
	}
}

// stamp returns the envelope's generation time in RFC 3339 form.
func stamp(renderer *output.JSONRenderer) string {
	return renderer.Document(domain.ReportResult{}).GeneratedAt.Format(time.RFC3339)
}
