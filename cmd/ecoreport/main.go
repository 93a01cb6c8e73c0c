// Command ecoreport generates summary reports from country economic data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/ecoreport/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ecoreport/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ecoreport/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ecoreport/internal/adapters/driving/cli"
	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/core/services"
	"github.com/custodia-labs/ecoreport/internal/logger"
	"github.com/custodia-labs/ecoreport/internal/reports"
	"github.com/custodia-labs/ecoreport/internal/sources"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// buildServices wires the adapters and core services.
func buildServices(configDir string) (*cli.Services, error) {
	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("config file unavailable, using defaults: %v", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
	}

	settingsService := services.NewSettingsService(store)

	// Invalid settings fall back to defaults here; commands report the error.
	delimiter := domain.DefaultAppSettings().Input.DelimiterRune()
	if s, err := settingsService.Get(); err == nil {
		delimiter = s.Input.DelimiterRune()
	}

	var history driven.RunHistoryStore
	historyStore, err := sqlite.NewStore(configDir)
	if err != nil {
		logger.Warn("run history unavailable, keeping it in memory: %v", err)
		history = memory.NewHistoryStore()
	} else {
		history = historyStore
	}

	ingest := services.NewIngestService(sources.NewDefaultRegistry(delimiter))
	reportService := services.NewReportService(reports.NewDefaultRegistry())

	return &cli.Services{
		Reports:  reportService,
		Pipeline: services.NewPipelineService(ingest, reportService, services.WithHistory(history)),
		Settings: settingsService,
		History:  services.NewHistoryService(history),
	}, nil
}
