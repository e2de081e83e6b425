package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDefaultColor   = "highlight.default_color"
	keyExcludedTags   = "highlight.excluded_tags"
	keyMarkerClass    = "highlight.marker_class"
	keyStorageBackend = "storage.backend"
	keyRedisAddr      = "storage.redis_addr"
	keyRedisKey       = "storage.redis_key"
	keyWatchInterval  = "watch.min_interval_ms"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Highlight: domain.HighlightSettings{
			DefaultColor: s.getString(keyDefaultColor, defaults.Highlight.DefaultColor),
			ExcludedTags: s.getStringSlice(keyExcludedTags, defaults.Highlight.ExcludedTags),
			MarkerClass:  s.getString(keyMarkerClass, defaults.Highlight.MarkerClass),
		},
		Storage: domain.StorageSettings{
			Backend:   s.getBackend(defaults.Storage.Backend),
			RedisAddr: s.configStore.GetString(keyRedisAddr), // No default - required only for redis
			RedisKey:  s.getString(keyRedisKey, defaults.Storage.RedisKey),
		},
		Watch: domain.WatchSettings{
			MinInterval: s.getMillis(keyWatchInterval, defaults.Watch.MinInterval),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	if err := s.configStore.Set(keyDefaultColor, settings.Highlight.DefaultColor); err != nil {
		return fmt.Errorf("save default colour: %w", err)
	}
	if err := s.configStore.Set(keyExcludedTags, settings.Highlight.ExcludedTags); err != nil {
		return fmt.Errorf("save excluded tags: %w", err)
	}
	if err := s.configStore.Set(keyMarkerClass, settings.Highlight.MarkerClass); err != nil {
		return fmt.Errorf("save marker class: %w", err)
	}
	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if settings.Storage.RedisAddr != "" {
		if err := s.configStore.Set(keyRedisAddr, settings.Storage.RedisAddr); err != nil {
			return fmt.Errorf("save redis addr: %w", err)
		}
	}
	if err := s.configStore.Set(keyRedisKey, settings.Storage.RedisKey); err != nil {
		return fmt.Errorf("save redis key: %w", err)
	}
	if err := s.configStore.Set(keyWatchInterval, settings.Watch.MinInterval.Milliseconds()); err != nil {
		return fmt.Errorf("save watch interval: %w", err)
	}

	return nil
}

// SetDefaultColor updates the colour used for new keywords.
func (s *SettingsService) SetDefaultColor(color string) error {
	color = domain.ResolveColor(color)
	if err := domain.ValidateColor(color); err != nil {
		return fmt.Errorf("%q: %w", color, err)
	}
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	return s.configStore.Set(keyDefaultColor, color)
}

// SetExcludedTags updates the container tags skipped when scanning.
// Tags are lower-cased, trimmed, and de-duplicated.
func (s *SettingsService) SetExcludedTags(tags []string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	seen := make(map[string]bool, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		cleaned = append(cleaned, tag)
	}
	return s.configStore.Set(keyExcludedTags, cleaned)
}

// SetStorageBackend selects the keyword store.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid storage backend: %s", backend)
	}
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	return s.configStore.Set(keyStorageBackend, backend.String())
}

// HighlightOptions returns the scan options derived from settings.
func (s *SettingsService) HighlightOptions() highlight.Options {
	settings, err := s.Get()
	if err != nil {
		return highlight.DefaultOptions()
	}
	return highlight.Options{ExcludedTags: settings.Highlight.ExcludedTags}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getString retrieves a string value or returns the default.
func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getStringSlice retrieves a slice value or returns the default.
// An explicitly stored empty list is kept.
func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	if val := s.configStore.GetStringSlice(key); val != nil {
		return val
	}
	return []string{}
}

// getMillis retrieves a millisecond duration or returns the default.
func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if val := s.configStore.GetInt(key); val > 0 {
		return time.Duration(val) * time.Millisecond
	}
	return defaultVal
}

// getBackend retrieves the storage backend or returns the default.
func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if backend.IsValid() {
		return backend
	}
	return defaultVal
}
