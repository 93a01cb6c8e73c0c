package http

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

// mockPipeline returns a canned summary and records its inputs.
type mockPipeline struct {
	summary *driving.RunSummary
	err     error
	files   []string
	reports []string
	runs    int
}

func (m *mockPipeline) Run(_ context.Context, files, reports []string) (*driving.RunSummary, error) {
	m.runs++
	m.files = files
	m.reports = reports
	return m.summary, m.err
}

// mockReportService lists a fixed set of reports.
type mockReportService struct {
	available []domain.ReportInfo
}

func (m *mockReportService) Available() []domain.ReportInfo {
	return m.available
}

func (m *mockReportService) Resolve(_ []string) ([]driven.Report, error) {
	return nil, nil
}

func (m *mockReportService) Run(_ context.Context, _ []string, _ *domain.Dataset) ([]domain.ReportResult, error) {
	return nil, nil
}

var _ driving.ReportService = (*mockReportService)(nil)
