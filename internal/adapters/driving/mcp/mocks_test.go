package mcp

import (
	"context"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

// mockReportService is a mock implementation of driving.ReportService.
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

// mockPipeline is a mock implementation of driving.PipelineService.
type mockPipeline struct {
	summary *driving.RunSummary
	err     error
	files   []string
	reports []string
}

func (m *mockPipeline) Run(_ context.Context, files, reports []string) (*driving.RunSummary, error) {
	m.files = files
	m.reports = reports
	return m.summary, m.err
}

func testReports() *mockReportService {
	return &mockReportService{available: []domain.ReportInfo{
		{Name: "average-gdp", Description: "Average GDP per country"},
		{Name: "continent-population", Description: "Population per continent"},
	}}
}
