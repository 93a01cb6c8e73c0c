package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
	"github.com/custodia-labs/ecoreport/internal/logger"
)

// mockPipeline returns a canned summary and records its inputs.
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

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.AppSettings
	getErr   error
	setErr   error
	set      map[string]string
	unset    []string
}

func newMockSettings() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Unset(key string) error {
	m.unset = append(m.unset, key)
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"input.delimiter", "log.verbose", "output.color", "output.format"}
}

func (m *mockSettingsService) Validate() error {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) Path() string {
	return "/home/test/.ecoreport/config.toml"
}

func testServices() (*Services, *mockPipeline, *mockSettingsService) {
	p := &mockPipeline{}
	s := newMockSettings()
	return &Services{
		Reports: &mockReportService{available: []domain.ReportInfo{
			{Name: "average-gdp", Description: "Average GDP per country"},
			{Name: "continent-population", Description: "Population per continent"},
		}},
		Pipeline: p,
		Settings: s,
	}, p, s
}

// resetFlags clears every flag-bound global so runs do not leak state.
func resetFlags() {
	verboseFlag = false
	configDir = ""
	colorFlag = ""
	reportFiles = nil
	reportNames = nil
	reportFormat = ""
	reportOutput = ""
	reportWatch = false
	viewFiles = nil
	viewReports = nil
	serveFiles = nil
	mcpPort = 0
	mcpHost = "127.0.0.1"
	mcpFiles = nil
	historyLimit = 0
}

// execute runs the root command with svc injected and returns both streams.
func execute(t *testing.T, svc *Services, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	SetServices(svc)
	SetServiceFactory(nil)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		SetServices(nil)
		resetFlags()
		logger.SetVerbose(false)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
