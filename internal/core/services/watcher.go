package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driving.Watcher = (*Watcher)(nil)

// Watcher re-applies keywords to a tree whenever the stored list changes.
// Applications run one at a time on the Run goroutine, in arrival order.
type Watcher struct {
	highlighter driving.HighlightService
	notifier    driven.ChangeNotifier
	settings    driving.SettingsService
}

// NewWatcher creates a watcher. settings may be nil.
func NewWatcher(
	highlighter driving.HighlightService,
	notifier driven.ChangeNotifier,
	settings driving.SettingsService,
) *Watcher {
	return &Watcher{
		highlighter: highlighter,
		notifier:    notifier,
		settings:    settings,
	}
}

// Run applies the stored keywords once, then re-applies the new list of
// every change until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, root *domain.Node, onApplied func(highlight.Result)) error {
	if w.highlighter == nil || w.notifier == nil {
		return domain.ErrNotImplemented
	}

	changes, err := w.notifier.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribing to keyword changes: %w", err)
	}

	res, err := w.highlighter.ApplyAll(ctx, root)
	if err != nil {
		logger.Warn("initial apply: %v", err)
	}
	if onApplied != nil {
		onApplied(res)
	}

	limiter := rate.NewLimiter(rate.Every(w.minInterval()), 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if err := limiter.Wait(ctx); err != nil {
				if errors.Is(err, context.Canceled) || ctx.Err() != nil {
					return nil
				}
				return err
			}
			change = latest(changes, change)
			logger.Info("keyword list changed: %d -> %d keywords", len(change.Old), len(change.New))

			res := w.highlighter.ApplyKeywords(ctx, root, change.New)
			if onApplied != nil {
				onApplied(res)
			}
		}
	}
}

// latest drains changes already queued and returns the newest one.
// The Old list of the result is the Old of the first change.
func latest(changes <-chan domain.KeywordChange, first domain.KeywordChange) domain.KeywordChange {
	result := first
	for {
		select {
		case next, ok := <-changes:
			if !ok {
				return result
			}
			result.New = next.New
		default:
			return result
		}
	}
}

// minInterval returns the configured spacing between applications.
func (w *Watcher) minInterval() time.Duration {
	defaults := domain.DefaultAppSettings()
	if w.settings == nil {
		return defaults.Watch.MinInterval
	}
	settings, err := w.settings.Get()
	if err != nil || settings.Watch.MinInterval <= 0 {
		return defaults.Watch.MinInterval
	}
	return settings.Watch.MinInterval
}
