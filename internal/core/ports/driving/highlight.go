package driving

import (
	"context"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
)

// HighlightService applies keywords to document trees.
type HighlightService interface {
	// ApplyAll clears all markers under root and applies the stored
	// enabled keywords in order. A store failure applies the empty list
	// and returns an error wrapping domain.ErrStore.
	ApplyAll(ctx context.Context, root *domain.Node) (highlight.Result, error)

	// Keywords reads the stored list. A store failure returns an empty list
	// and an error wrapping domain.ErrStore.
	Keywords(ctx context.Context) ([]domain.Keyword, error)

	// ApplyKeywords clears all markers under root and applies the enabled
	// subset of keywords in order.
	ApplyKeywords(ctx context.Context, root *domain.Node, keywords []domain.Keyword) highlight.Result

	// ApplyIncremental applies one keyword without clearing existing markers.
	ApplyIncremental(ctx context.Context, root *domain.Node, keyword domain.Keyword) highlight.Pass

	// Clear removes every marker under root and returns how many were removed.
	Clear(ctx context.Context, root *domain.Node) int
}

// Watcher re-applies keywords whenever the stored list changes.
type Watcher interface {
	// Run applies the current list, then re-applies on every change until
	// ctx is cancelled. onApplied is called after each application.
	Run(ctx context.Context, root *domain.Node, onApplied func(highlight.Result)) error
}
