package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
	"github.com/custodia-labs/ecoreport/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "ECOREPORT"

// Config keys for settings storage.
const (
	keyOutputFormat   = "output.format"
	keyOutputColor    = "output.color"
	keyInputDelimiter = "input.delimiter"
	keyLogVerbose     = "log.verbose"
)

// envOverrides holds ECOREPORT_* variables. Nil fields were not set.
type envOverrides struct {
	Format    *string `envconfig:"FORMAT"`
	Color     *string `envconfig:"COLOR"`
	Delimiter *string `envconfig:"DELIMITER"`
	Verbose   *bool   `envconfig:"VERBOSE"`
}

// SettingsService manages application settings.
// Effective settings are layered: defaults, then the config store,
// then ECOREPORT_* environment variables.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
	}
}

// Get retrieves the effective application settings.
// Returns domain.ErrInvalidInput if the merged result is not valid.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", domain.ErrInvalidInput, err)
	}
	applyEnv(&settings, env)

	if err := s.check(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// stored returns defaults overlaid with config store values, without env.
func (s *SettingsService) stored() domain.AppSettings {
	settings := domain.DefaultAppSettings()

	if v := s.configStore.GetString(keyOutputFormat); v != "" {
		settings.Output.Format = domain.OutputFormat(v)
	}
	if v := s.configStore.GetString(keyOutputColor); v != "" {
		settings.Output.Color = domain.ColorMode(v)
	}
	if v := s.configStore.GetString(keyInputDelimiter); v != "" {
		settings.Input.Delimiter = v
	}
	settings.Verbose = s.getBool(keyLogVerbose, settings.Verbose)

	return settings
}

func applyEnv(settings *domain.AppSettings, env envOverrides) {
	if env.Format != nil {
		logger.Debug("%s_FORMAT overrides output format: %s", EnvPrefix, *env.Format)
		settings.Output.Format = domain.OutputFormat(*env.Format)
	}
	if env.Color != nil {
		settings.Output.Color = domain.ColorMode(*env.Color)
	}
	if env.Delimiter != nil {
		settings.Input.Delimiter = *env.Delimiter
	}
	if env.Verbose != nil {
		settings.Verbose = *env.Verbose
	}
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings cannot be nil", domain.ErrInvalidInput)
	}
	if err := s.check(settings); err != nil {
		return err
	}

	if err := s.configStore.Set(keyOutputFormat, settings.Output.Format.String()); err != nil {
		return fmt.Errorf("save output format: %w", err)
	}
	if err := s.configStore.Set(keyOutputColor, settings.Output.Color.String()); err != nil {
		return fmt.Errorf("save output color: %w", err)
	}
	if err := s.configStore.Set(keyInputDelimiter, settings.Input.Delimiter); err != nil {
		return fmt.Errorf("save input delimiter: %w", err)
	}
	if err := s.configStore.Set(keyLogVerbose, settings.Verbose); err != nil {
		return fmt.Errorf("save log verbose: %w", err)
	}

	return nil
}

// Set updates one configuration key after validating the resulting settings.
func (s *SettingsService) Set(key, value string) error {
	candidate := s.stored()
	var stored any = value

	switch key {
	case keyOutputFormat:
		candidate.Output.Format = domain.OutputFormat(value)
	case keyOutputColor:
		candidate.Output.Color = domain.ColorMode(value)
	case keyInputDelimiter:
		candidate.Input.Delimiter = value
	case keyLogVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		candidate.Verbose = b
		stored = b
	default:
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	if err := s.check(&candidate); err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset removes a configuration key.
func (s *SettingsService) Unset(key string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported configuration keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{keyOutputFormat, keyOutputColor, keyInputDelimiter, keyLogVerbose}
	sort.Strings(keys)
	return keys
}

// Validate checks that the effective settings are usable.
func (s *SettingsService) Validate() error {
	_, err := s.Get()
	return err
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// check runs struct validation and reports the first failing field.
func (s *SettingsService) check(settings *domain.AppSettings) error {
	err := s.validate.Struct(settings)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s=%q fails %q", domain.ErrInvalidInput, fieldKey(fe.StructNamespace()), fmt.Sprint(fe.Value()), fe.Tag())
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
}

// fieldKey maps a validator namespace to its config key.
func fieldKey(namespace string) string {
	switch namespace {
	case "AppSettings.Output.Format":
		return keyOutputFormat
	case "AppSettings.Output.Color":
		return keyOutputColor
	case "AppSettings.Input.Delimiter":
		return keyInputDelimiter
	default:
		return namespace
	}
}

func isKnownKey(key string) bool {
	switch key {
	case keyOutputFormat, keyOutputColor, keyInputDelimiter, keyLogVerbose:
		return true
	default:
		return false
	}
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
