// Package filewatch detects keyword list changes made by other processes
// by watching the store's files with fsnotify.
package filewatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// Ensure Notifier implements the interface.
var _ driven.ChangeNotifier = (*Notifier)(nil)

// DefaultDebounce is the quiet period after the last file event before the
// list is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// Notifier reloads the keyword list whenever the store file changes and
// emits a change when the reloaded list differs from the last one seen.
type Notifier struct {
	store    driven.KeywordStore
	path     string
	debounce time.Duration
}

// NewNotifier watches path, the file backing store. Sibling files sharing
// its name as a prefix (SQLite -wal and -journal files) are watched too.
func NewNotifier(store driven.KeywordStore, path string, debounce time.Duration) *Notifier {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Notifier{
		store:    store,
		path:     path,
		debounce: debounce,
	}
}

// Subscribe starts watching and returns a channel of changes.
// The channel closes when ctx is cancelled or the watcher fails.
func (n *Notifier) Subscribe(ctx context.Context) (<-chan domain.KeywordChange, error) {
	last, err := n.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading keywords: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory: SQLite replaces and recreates its side files.
	if err := watcher.Add(filepath.Dir(n.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(n.path), err)
	}

	out := make(chan domain.KeywordChange)
	go n.loop(ctx, watcher, last, out)
	return out, nil
}

func (n *Notifier) loop(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	last []domain.Keyword,
	out chan<- domain.KeywordChange,
) {
	defer close(out)
	defer watcher.Close()

	timer := time.NewTimer(n.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if n.relevant(event) {
				timer.Reset(n.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher: %v", err)

		case <-timer.C:
			current, err := n.store.List(ctx)
			if err != nil {
				logger.Warn("reloading keywords: %v", err)
				continue
			}
			if domain.KeywordsEqual(last, current) {
				logger.Debug("store file touched, keyword list unchanged")
				continue
			}
			select {
			case out <- domain.KeywordChange{Old: last, New: current}:
				last = current
			case <-ctx.Done():
				return
			}
		}
	}
}

// relevant reports whether event concerns the store file or its side files.
func (n *Notifier) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(n.path)
	return strings.HasPrefix(filepath.Base(event.Name), base)
}
