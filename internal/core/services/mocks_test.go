package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// mockSource returns canned observations per path and records what it read.
type mockSource struct {
	data  map[string][]domain.Observation
	errs  map[string]error
	reads []string
}

func (m *mockSource) Name() string         { return "mock" }
func (m *mockSource) Extensions() []string { return []string{".csv"} }

func (m *mockSource) Read(_ context.Context, path string) ([]domain.Observation, error) {
	m.reads = append(m.reads, path)
	if err, ok := m.errs[path]; ok {
		return nil, err
	}
	if obs, ok := m.data[path]; ok {
		return obs, nil
	}
	return nil, &domain.FileError{Path: path, Err: domain.ErrFileNotFound}
}

type mockSourceRegistry struct {
	source *mockSource
}

func (m *mockSourceRegistry) Register(driven.Source)   {}
func (m *mockSourceRegistry) For(string) driven.Source { return m.source }
func (m *mockSourceRegistry) Extensions() []string     { return m.source.Extensions() }

// mockReport generates from a function.
type mockReport struct {
	name     string
	generate func(ds *domain.Dataset) ([]domain.Row, error)
}

func (m *mockReport) Name() string        { return m.name }
func (m *mockReport) Description() string { return "mock report " + m.name }
func (m *mockReport) Columns() []string   { return []string{"country", "value"} }

func (m *mockReport) Generate(_ context.Context, ds *domain.Dataset) ([]domain.Row, error) {
	return m.generate(ds)
}

type mockReportRegistry struct {
	reports map[string]*mockReport
}

func newMockReportRegistry(reports ...*mockReport) *mockReportRegistry {
	r := &mockReportRegistry{reports: make(map[string]*mockReport)}
	for _, rep := range reports {
		r.reports[rep.name] = rep
	}
	return r
}

func (m *mockReportRegistry) Register(string, driven.ReportBuilder) {}

func (m *mockReportRegistry) Has(name string) bool {
	_, ok := m.reports[name]
	return ok
}

func (m *mockReportRegistry) Names() []string {
	names := make([]string, 0, len(m.reports))
	for n := range m.reports {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (m *mockReportRegistry) Build(name string) (driven.Report, error) {
	r, ok := m.reports[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownReport, name)
	}
	return r, nil
}

func (m *mockReportRegistry) Resolve(names []string) ([]driven.Report, error) {
	out := make([]driven.Report, 0, len(names))
	for _, n := range names {
		r, err := m.Build(n)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
