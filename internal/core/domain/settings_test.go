package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStorageBackend_IsValid(t *testing.T) {
	for _, b := range AllStorageBackends() {
		assert.True(t, b.IsValid(), b)
		assert.NotEqual(t, unknownDescription, b.Description())
	}
	assert.False(t, StorageBackend("postgres").IsValid())
	assert.Equal(t, unknownDescription, StorageBackend("postgres").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultColor, s.Highlight.DefaultColor)
	assert.Equal(t, []string{"script", "style", "mark"}, s.Highlight.ExcludedTags)
	assert.Equal(t, DefaultMarkerClass, s.Highlight.MarkerClass)
	assert.Equal(t, StorageBackendSQLite, s.Storage.Backend)
	assert.Equal(t, "highlighter_keywords", s.Storage.RedisKey)
	assert.Equal(t, 250*time.Millisecond, s.Watch.MinInterval)
}
