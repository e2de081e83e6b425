package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
)

func fastSettings(t *testing.T) *SettingsService {
	t.Helper()
	return NewSettingsService(memory.NewConfigStore(map[string]any{
		"watch.min_interval_ms": 1,
	}))
}

func waitResult(t *testing.T, results <-chan highlight.Result) highlight.Result {
	t.Helper()
	select {
	case res := <-results:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("no application")
		return highlight.Result{}
	}
}

func TestWatcher_AppliesOnChange(t *testing.T) {
	store := memory.NewKeywordStore(domain.Keyword{ID: "1", Text: "cat", Color: "#FFFF00", Enabled: true})
	settings := fastSettings(t)
	watcher := NewWatcher(NewHighlightService(store, settings), store, settings)
	root := domain.NewContainer("p", domain.NewText("cat and dog"))

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan highlight.Result, 4)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx, root, func(res highlight.Result) { results <- res })
	}()

	first := waitResult(t, results)
	assert.Equal(t, 1, first.Total)

	require.NoError(t, store.Save(ctx, []domain.Keyword{
		{ID: "2", Text: "dog", Color: "#4ADE80", Enabled: true},
	}))
	second := waitResult(t, results)
	assert.Equal(t, 1, second.Cleared)
	assert.Equal(t, 1, second.Total)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Equal(t, map[string]int{"dog": 1}, highlight.CountMarkers(root))
}

func TestWatcher_NilDependencies(t *testing.T) {
	watcher := NewWatcher(nil, nil, nil)

	err := watcher.Run(context.Background(), domain.NewContainer("p"), nil)

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestLatest_CoalescesQueuedChanges(t *testing.T) {
	changes := make(chan domain.KeywordChange, 3)
	changes <- domain.KeywordChange{New: []domain.Keyword{{Text: "b"}}}
	changes <- domain.KeywordChange{New: []domain.Keyword{{Text: "c"}}}

	got := latest(changes, domain.KeywordChange{
		Old: []domain.Keyword{{Text: "x"}},
		New: []domain.Keyword{{Text: "a"}},
	})

	assert.Equal(t, "x", got.Old[0].Text)
	assert.Equal(t, "c", got.New[0].Text)
}
