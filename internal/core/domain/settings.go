package domain

import "time"

const unknownDescription = "Unknown"

// DefaultMarkerClass is the class attribute carried by rendered markers.
const DefaultMarkerClass = "text-highlighter-mark"

// StorageBackend identifies where the keyword list is kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite keeps keywords in a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendRedis keeps keywords in Redis, synchronised across machines.
	StorageBackendRedis StorageBackend = "redis"

	// StorageBackendMemory keeps keywords for the lifetime of the process.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendRedis, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (local file)"
	case StorageBackendRedis:
		return "Redis (synchronised)"
	case StorageBackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// HighlightSettings controls how markers are applied.
type HighlightSettings struct {
	// DefaultColor is used for keywords added without a colour.
	DefaultColor string

	// ExcludedTags are container tags whose subtrees are never scanned.
	ExcludedTags []string

	// MarkerClass is the class attribute of rendered markers.
	MarkerClass string
}

// StorageSettings selects and configures the keyword store.
type StorageSettings struct {
	// Backend is the keyword store implementation.
	Backend StorageBackend

	// RedisAddr is the Redis server address (for the redis backend).
	RedisAddr string

	// RedisKey is the key holding the keyword list (for the redis backend).
	RedisKey string
}

// WatchSettings controls re-application on keyword changes.
type WatchSettings struct {
	// MinInterval is the minimum spacing between two re-applications.
	MinInterval time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	Highlight HighlightSettings
	Storage   StorageSettings
	Watch     WatchSettings
}

// DefaultExcludedTags returns the container tags skipped by default.
// Marker tags are included so existing highlights are never re-matched.
func DefaultExcludedTags() []string {
	return []string{"script", "style", "mark"}
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Highlight: HighlightSettings{
			DefaultColor: DefaultColor,
			ExcludedTags: DefaultExcludedTags(),
			MarkerClass:  DefaultMarkerClass,
		},
		Storage: StorageSettings{
			Backend:  StorageBackendSQLite,
			RedisKey: "highlighter_keywords",
		},
		Watch: WatchSettings{
			MinInterval: 250 * time.Millisecond,
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		StorageBackendSQLite,
		StorageBackendRedis,
		StorageBackendMemory,
	}
}
