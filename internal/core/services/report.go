package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
	"github.com/custodia-labs/ecoreport/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService resolves report identifiers and runs the reports.
type ReportService struct {
	registry driven.ReportRegistry
}

// NewReportService creates a new report service.
func NewReportService(registry driven.ReportRegistry) *ReportService {
	return &ReportService{registry: registry}
}

// Available lists every registered report, sorted by name.
func (s *ReportService) Available() []domain.ReportInfo {
	if s.registry == nil {
		return nil
	}

	names := s.registry.Names()
	infos := make([]domain.ReportInfo, 0, len(names))
	for _, name := range names {
		report, err := s.registry.Build(name)
		if err != nil {
			logger.Warn("Skipping report %s: %v", name, err)
			continue
		}
		infos = append(infos, domain.ReportInfo{Name: name, Description: report.Description()})
	}
	return infos
}

// Resolve validates and builds the requested reports.
func (s *ReportService) Resolve(names []string) ([]driven.Report, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no reports requested", domain.ErrInvalidInput)
	}
	if s.registry == nil {
		return nil, errors.New("report registry not configured")
	}

	reports, err := s.registry.Resolve(names)
	if err != nil {
		return nil, err
	}

	logger.Debug("Resolved %d reports: %v", len(reports), names)
	return reports, nil
}

// Run resolves names then generates each report in order.
// A report that errors or panics yields a result with Err set; the
// remaining reports still run.
func (s *ReportService) Run(ctx context.Context, names []string, ds *domain.Dataset) ([]domain.ReportResult, error) {
	reports, err := s.Resolve(names)
	if err != nil {
		return nil, err
	}

	logger.Section("Reports")

	results := make([]domain.ReportResult, 0, len(reports))
	for _, report := range reports {
		results = append(results, s.generate(ctx, report, ds))
	}
	return results, nil
}

func (s *ReportService) generate(ctx context.Context, report driven.Report, ds *domain.Dataset) (res domain.ReportResult) {
	res = domain.ReportResult{
		Name:    report.Name(),
		Columns: report.Columns(),
	}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res.Rows = nil
			res.Err = fmt.Errorf("%w: panic: %v", domain.ErrReportFailed, r)
		}
		if res.Err != nil {
			logger.Warn("Report %s failed: %v", res.Name, res.Err)
			return
		}
		logger.Debug("Report %s: %d rows in %s", res.Name, len(res.Rows), time.Since(start))
	}()

	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("%w: %w", domain.ErrReportFailed, err)
		return res
	}

	rows, err := report.Generate(ctx, ds)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", domain.ErrReportFailed, err)
		return res
	}
	res.Rows = rows
	return res
}
