package driven

import (
	"context"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// KeywordStore persists the ordered keyword list.
// The store owns the authoritative list; callers work on snapshots.
type KeywordStore interface {
	// List returns the stored keywords in their stored order.
	List(ctx context.Context) ([]domain.Keyword, error)

	// Save replaces the stored list with keywords, keeping their order.
	Save(ctx context.Context, keywords []domain.Keyword) error
}

// ChangeNotifier delivers keyword list changes as they happen.
type ChangeNotifier interface {
	// Subscribe returns a channel receiving one change per update of the list.
	// The channel is closed when ctx is cancelled or the notifier is closed.
	Subscribe(ctx context.Context) (<-chan domain.KeywordChange, error)
}
