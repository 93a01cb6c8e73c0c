package driving

import "github.com/custodia-labs/ecoreport/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults, then the config file,
	// then ECOREPORT_* environment overrides.
	Get() (*domain.AppSettings, error)

	// Save validates and persists settings to the config file.
	Save(settings *domain.AppSettings) error

	// Set updates a single dot-notation key (e.g., "output.format").
	Set(key, value string) error

	// Unset removes a key so its default applies again.
	Unset(key string) error

	// Keys returns the supported configuration keys, sorted.
	Keys() []string

	// Validate checks that the effective settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns the config file location.
	Path() string
}
