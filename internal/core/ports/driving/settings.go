package driving

import (
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetDefaultColor updates the colour used for new keywords.
	SetDefaultColor(color string) error

	// SetExcludedTags updates the container tags skipped when scanning.
	SetExcludedTags(tags []string) error

	// SetStorageBackend selects the keyword store.
	SetStorageBackend(backend domain.StorageBackend) error

	// HighlightOptions returns the scan options derived from settings.
	HighlightOptions() highlight.Options

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
