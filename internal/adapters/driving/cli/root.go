// Package cli provides the cobra command tree for ecoreport.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
	"github.com/custodia-labs/ecoreport/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services aggregates the driving ports used by the commands.
type Services struct {
	Reports  driving.ReportService
	Pipeline driving.PipelineService
	Settings driving.SettingsService
	History  driving.HistoryService
}

// ServiceFactory builds the services once global flags are parsed.
// configDir is the value of --config, empty for the default location.
type ServiceFactory func(configDir string) (*Services, error)

var (
	services *Services
	factory  ServiceFactory

	verboseFlag bool
	configDir   string
	colorFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "ecoreport",
	Short: "Summary reports over country economic data",
	Long: `ecoreport reads country-level economic indicators from CSV and Excel files
and prints summary reports such as average GDP per country or population
per continent.

Examples:
  ecoreport report --files 2022.csv,2023.csv --report average-gdp
  ecoreport report -f data.xlsx -r average-gdp -r continent-population --format markdown
  ecoreport reports`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log pipeline steps to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.ecoreport)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "colour mode: auto, always or never")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects ready-made services, bypassing the factory.
func SetServices(s *Services) {
	services = s
}

// SetServiceFactory registers the constructor used on first command run.
func SetServiceFactory(f ServiceFactory) {
	factory = f
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup builds services and applies logging settings before any command.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())

	if services == nil && factory != nil {
		s, err := factory(configDir)
		if err != nil {
			return fmt.Errorf("initialising: %w", err)
		}
		services = s
	}

	verbose := verboseFlag
	if services != nil && services.Settings != nil {
		// Invalid settings are reported by the commands that need them.
		if settings, err := services.Settings.Get(); err == nil {
			verbose = verbose || settings.Verbose
		}
	}
	logger.SetVerbose(verbose)
	return nil
}

// effectiveSettings merges stored settings with command-line flags.
func effectiveSettings(format string) (domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if services != nil && services.Settings != nil {
		s, err := services.Settings.Get()
		if err != nil {
			return settings, fmt.Errorf("loading settings: %w", err)
		}
		settings = *s
	}

	if format != "" {
		settings.Output.Format = domain.OutputFormat(format)
		if !settings.Output.Format.IsValid() {
			return settings, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
		}
	}
	if colorFlag != "" {
		settings.Output.Color = domain.ColorMode(colorFlag)
		if !settings.Output.Color.IsValid() {
			return settings, fmt.Errorf("%w: colour mode %q", domain.ErrInvalidInput, colorFlag)
		}
	}
	return settings, nil
}

func requirePipeline() error {
	if services == nil || services.Pipeline == nil {
		return errors.New("pipeline service not configured")
	}
	return nil
}
