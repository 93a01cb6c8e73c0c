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

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService builds a dataset by reading files one after another.
type IngestService struct {
	sources driven.SourceRegistry
}

// NewIngestService creates a new ingest service.
func NewIngestService(sources driven.SourceRegistry) *IngestService {
	return &IngestService{sources: sources}
}

// Load reads each file in order and appends its observations to one dataset.
// The first failure aborts: no partial dataset is returned and later files
// are never opened.
func (s *IngestService) Load(ctx context.Context, paths []string) (*domain.Dataset, error) {
	logger.Section("Ingestion")
	defer logger.Timed("ingestion", time.Now())

	if s.sources == nil {
		return nil, errors.New("ingest: source registry not configured")
	}

	ds := domain.NewDataset()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, &domain.FileError{Path: path, Err: fmt.Errorf("%w: %w", domain.ErrFileRead, err)}
		}

		source := s.sources.For(path)
		logger.Debug("Reading %s with %s source", path, source.Name())

		obs, err := source.Read(ctx, path)
		if err != nil {
			logger.Warn("Ingestion aborted: %v", err)
			return nil, err
		}

		ds.AppendObservations(obs)
		logger.Debug("Read %d rows from %s", len(obs), path)
	}

	logger.Info("Dataset: %d countries, %d records from %d files", ds.Len(), ds.RecordCount(), len(paths))
	return ds, nil
}
