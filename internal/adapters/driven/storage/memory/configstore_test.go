package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Empty(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("highlight.default_color")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("highlight.default_color"))
	assert.Nil(t, store.GetStringSlice("highlight.excluded_tags"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_SeedsValues(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"highlight.default_color": "#FFFF00", "storage.backend": "sqlite"},
		map[string]any{"storage.backend": "memory"},
	)

	assert.Equal(t, "#FFFF00", store.GetString("highlight.default_color"))
	assert.Equal(t, "memory", store.GetString("storage.backend"), "later maps override earlier ones")
}

func TestNewConfigStore_DoesNotAliasSeed(t *testing.T) {
	seed := map[string]any{"storage.backend": "sqlite"}
	store := NewConfigStore(seed)

	seed["storage.backend"] = "redis"
	seed["storage.redis_key"] = "other"

	assert.Equal(t, "sqlite", store.GetString("storage.backend"))
	_, ok := store.Get("storage.redis_key")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"name":       "hilite",
		"int":        3,
		"int64":      int64(4),
		"float":      float64(5),
		"bool":       true,
		"any_slice":  []any{"script", 7, "style"},
		"wrong_type": 1.5,
	})

	assert.Equal(t, "hilite", store.GetString("name"))
	assert.Empty(t, store.GetString("int"))

	assert.Equal(t, 3, store.GetInt("int"))
	assert.Equal(t, 4, store.GetInt("int64"))
	assert.Equal(t, 5, store.GetInt("float"))
	assert.Zero(t, store.GetInt("name"))

	assert.True(t, store.GetBool("bool"))
	assert.False(t, store.GetBool("name"))

	assert.Equal(t, []string{"script", "style"}, store.GetStringSlice("any_slice"))
	assert.Nil(t, store.GetStringSlice("wrong_type"))
}

func TestConfigStore_SetCopiesStringSlice(t *testing.T) {
	store := NewConfigStore()
	tags := []string{"script", "style"}

	require.NoError(t, store.Set("highlight.excluded_tags", tags))
	tags[0] = "mark"

	assert.Equal(t, []string{"script", "style"}, store.GetStringSlice("highlight.excluded_tags"))
}

func TestConfigStore_GetStringSliceReturnsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"highlight.excluded_tags": []string{"script", "style"}})

	got := store.GetStringSlice("highlight.excluded_tags")
	got[0] = "mark"

	assert.Equal(t, []string{"script", "style"}, store.GetStringSlice("highlight.excluded_tags"))
}

func TestConfigStore_SetOverwrites(t *testing.T) {
	store := NewConfigStore(map[string]any{"storage.backend": "sqlite"})

	require.NoError(t, store.Set("storage.backend", "redis"))

	val, ok := store.Get("storage.backend")
	assert.True(t, ok)
	assert.Equal(t, "redis", val)
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore(map[string]any{"storage.backend": "memory"})

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "memory", store.GetString("storage.backend"))
}
