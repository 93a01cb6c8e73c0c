package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
	"github.com/custodia-labs/ecoreport/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService chains the ingest and report services.
type PipelineService struct {
	ingest  driving.IngestService
	reports driving.ReportService
	history driven.RunHistoryStore
	now     func() time.Time
}

// PipelineOption configures a PipelineService.
type PipelineOption func(*PipelineService)

// WithHistory records every run in store. Recording failures are logged
// and never fail the run.
func WithHistory(store driven.RunHistoryStore) PipelineOption {
	return func(s *PipelineService) {
		s.history = store
	}
}

// NewPipelineService creates a new pipeline service.
func NewPipelineService(ingest driving.IngestService, reports driving.ReportService, opts ...PipelineOption) *PipelineService {
	s := &PipelineService{ingest: ingest, reports: reports, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one single-pass pipeline. Nothing is cached between calls.
func (s *PipelineService) Run(ctx context.Context, files, reports []string) (*driving.RunSummary, error) {
	if s.ingest == nil || s.reports == nil {
		return nil, errors.New("pipeline: services not configured")
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no input files", domain.ErrInvalidInput)
	}
	defer logger.Timed("pipeline", time.Now())

	run := domain.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: s.now(),
		Files:     files,
		Reports:   reports,
	}

	summary, err := s.run(ctx, files, reports)
	if summary != nil {
		summary.RunID = run.ID
		run.Records = summary.Records
		run.Countries = summary.Countries
		run.Failed = summary.Failed()
	}
	if err != nil {
		run.Error = err.Error()
	}
	run.EndedAt = s.now()
	s.record(ctx, run)

	return summary, err
}

func (s *PipelineService) run(ctx context.Context, files, reports []string) (*driving.RunSummary, error) {
	// Unknown reports are rejected before any file is opened.
	if _, err := s.reports.Resolve(reports); err != nil {
		return nil, err
	}

	ds, err := s.ingest.Load(ctx, files)
	if err != nil {
		return nil, err
	}
	if ds.IsEmpty() {
		return nil, fmt.Errorf("%w: %d files contained no rows", domain.ErrNoData, len(files))
	}

	results, err := s.reports.Run(ctx, reports, ds)
	if err != nil {
		return nil, err
	}

	return &driving.RunSummary{
		Files:     len(files),
		Countries: ds.Len(),
		Records:   ds.RecordCount(),
		Results:   results,
	}, nil
}

func (s *PipelineService) record(ctx context.Context, run domain.RunRecord) {
	if s.history == nil {
		return
	}
	// A cancelled run is still worth recording.
	if err := s.history.Record(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("recording run %s: %v", run.ID, err)
		return
	}
	logger.Debug("recorded run %s", run.ID)
}
