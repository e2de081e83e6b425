package driving

import (
	"context"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// KeywordService manages the keyword list.
// Keywords may be referenced by ID or by their text.
type KeywordService interface {
	// List returns all keywords in application order.
	List(ctx context.Context) ([]domain.Keyword, error)

	// Get retrieves a keyword by ID or text.
	Get(ctx context.Context, ref string) (*domain.Keyword, error)

	// Add appends a new enabled keyword. An empty color uses the default.
	Add(ctx context.Context, text, color string) (*domain.Keyword, error)

	// Update applies field changes to a keyword.
	Update(ctx context.Context, ref string, update domain.KeywordUpdate) (*domain.Keyword, error)

	// Toggle enables or disables a keyword.
	Toggle(ctx context.Context, ref string, enabled bool) error

	// SetColor changes the highlight colour of a keyword.
	SetColor(ctx context.Context, ref, color string) error

	// Delete removes a keyword.
	Delete(ctx context.Context, ref string) error

	// Reorder sets the application order. ids must name every keyword once.
	Reorder(ctx context.Context, ids []string) error

	// Move places a keyword at index, shifting the others.
	Move(ctx context.Context, ref string, index int) error

	// Import adds keywords from an external list. With replace, the stored
	// list is replaced; otherwise keywords with known texts are skipped.
	// Returns the number of keywords added.
	Import(ctx context.Context, keywords []domain.Keyword, replace bool) (int, error)
}
