package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// Ensure KeywordService implements the interface.
var _ driving.KeywordService = (*KeywordService)(nil)

// KeywordService manages the keyword list.
// Every mutation reads the stored list, changes it, and saves it whole.
type KeywordService struct {
	store    driven.KeywordStore
	settings driving.SettingsService

	// mu serialises read-modify-save cycles within this process.
	mu sync.Mutex
}

// NewKeywordService creates a new keyword service.
// settings may be nil, in which case domain.DefaultColor is used for new keywords.
func NewKeywordService(store driven.KeywordStore, settings driving.SettingsService) *KeywordService {
	return &KeywordService{
		store:    store,
		settings: settings,
	}
}

// List returns all keywords in application order.
func (s *KeywordService) List(ctx context.Context) ([]domain.Keyword, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	keywords, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return keywords, nil
}

// Get retrieves a keyword by ID or text.
func (s *KeywordService) Get(ctx context.Context, ref string) (*domain.Keyword, error) {
	keywords, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	i := domain.FindKeyword(keywords, ref)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	kw := keywords[i]
	return &kw, nil
}

// Add appends a new enabled keyword.
func (s *KeywordService) Add(ctx context.Context, text, color string) (*domain.Keyword, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("keyword text is empty: %w", domain.ErrInvalidInput)
	}
	if color == "" {
		color = s.defaultColor()
	}
	color = domain.ResolveColor(color)
	if err := domain.ValidateColor(color); err != nil {
		return nil, fmt.Errorf("%q: %w", color, err)
	}

	var added domain.Keyword
	err := s.mutate(ctx, func(keywords []domain.Keyword) ([]domain.Keyword, error) {
		if textIndex(keywords, text) >= 0 {
			return nil, fmt.Errorf("keyword %q: %w", text, domain.ErrAlreadyExists)
		}
		now := time.Now().UTC()
		added = domain.Keyword{
			ID:        uuid.New().String(),
			Text:      text,
			Color:     color,
			Enabled:   true,
			CreatedAt: now,
			LastUsed:  now,
		}
		return append(keywords, added), nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("added keyword %q (%s)", added.Text, added.Color)
	return &added, nil
}

// Update applies field changes to a keyword and refreshes its LastUsed time.
func (s *KeywordService) Update(
	ctx context.Context,
	ref string,
	update domain.KeywordUpdate,
) (*domain.Keyword, error) {
	var updated domain.Keyword
	err := s.mutate(ctx, func(keywords []domain.Keyword) ([]domain.Keyword, error) {
		i := domain.FindKeyword(keywords, ref)
		if i < 0 {
			return nil, fmt.Errorf("keyword %q: %w", ref, domain.ErrNotFound)
		}
		kw := keywords[i]

		if update.Text != nil {
			text := strings.TrimSpace(*update.Text)
			if text == "" {
				return nil, fmt.Errorf("keyword text is empty: %w", domain.ErrInvalidInput)
			}
			if j := textIndex(keywords, text); j >= 0 && j != i {
				return nil, fmt.Errorf("keyword %q: %w", text, domain.ErrAlreadyExists)
			}
			kw.Text = text
		}
		if update.Color != nil {
			color := domain.ResolveColor(*update.Color)
			if err := domain.ValidateColor(color); err != nil {
				return nil, fmt.Errorf("%q: %w", color, err)
			}
			kw.Color = color
		}
		if update.Enabled != nil {
			kw.Enabled = *update.Enabled
		}
		kw.LastUsed = time.Now().UTC()

		keywords[i] = kw
		updated = kw
		return keywords, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Toggle enables or disables a keyword.
func (s *KeywordService) Toggle(ctx context.Context, ref string, enabled bool) error {
	_, err := s.Update(ctx, ref, domain.KeywordUpdate{Enabled: &enabled})
	return err
}

// SetColor changes the highlight colour of a keyword.
func (s *KeywordService) SetColor(ctx context.Context, ref, color string) error {
	_, err := s.Update(ctx, ref, domain.KeywordUpdate{Color: &color})
	return err
}

// Delete removes a keyword.
func (s *KeywordService) Delete(ctx context.Context, ref string) error {
	return s.mutate(ctx, func(keywords []domain.Keyword) ([]domain.Keyword, error) {
		i := domain.FindKeyword(keywords, ref)
		if i < 0 {
			return nil, fmt.Errorf("keyword %q: %w", ref, domain.ErrNotFound)
		}
		return append(keywords[:i], keywords[i+1:]...), nil
	})
}

// Reorder sets the application order from a full list of IDs.
func (s *KeywordService) Reorder(ctx context.Context, ids []string) error {
	return s.mutate(ctx, func(keywords []domain.Keyword) ([]domain.Keyword, error) {
		if len(ids) != len(keywords) {
			return nil, fmt.Errorf("reorder needs %d ids, got %d: %w",
				len(keywords), len(ids), domain.ErrInvalidInput)
		}
		byID := make(map[string]domain.Keyword, len(keywords))
		for i := range keywords {
			byID[keywords[i].ID] = keywords[i]
		}
		reordered := make([]domain.Keyword, 0, len(ids))
		for _, id := range ids {
			kw, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("reorder: unknown or repeated id %q: %w", id, domain.ErrInvalidInput)
			}
			delete(byID, id)
			reordered = append(reordered, kw)
		}
		return reordered, nil
	})
}

// Move places a keyword at index, shifting the others.
// Indexes past the end move the keyword to the end.
func (s *KeywordService) Move(ctx context.Context, ref string, index int) error {
	if index < 0 {
		return fmt.Errorf("negative index %d: %w", index, domain.ErrInvalidInput)
	}
	return s.mutate(ctx, func(keywords []domain.Keyword) ([]domain.Keyword, error) {
		i := domain.FindKeyword(keywords, ref)
		if i < 0 {
			return nil, fmt.Errorf("keyword %q: %w", ref, domain.ErrNotFound)
		}
		kw := keywords[i]
		rest := append(keywords[:i:i], keywords[i+1:]...)
		if index > len(rest) {
			index = len(rest)
		}
		moved := make([]domain.Keyword, 0, len(keywords))
		moved = append(moved, rest[:index]...)
		moved = append(moved, kw)
		moved = append(moved, rest[index:]...)
		return moved, nil
	})
}

// Import adds keywords from an external list.
// Imported records keep their colour and enabled flag; missing IDs and
// timestamps are filled in. Records with empty text are rejected.
func (s *KeywordService) Import(ctx context.Context, imported []domain.Keyword, replace bool) (int, error) {
	added := 0
	err := s.mutate(ctx, func(keywords []domain.Keyword) ([]domain.Keyword, error) {
		if replace {
			keywords = nil
		}
		now := time.Now().UTC()
		for _, kw := range imported {
			kw.Text = strings.TrimSpace(kw.Text)
			if kw.Text == "" {
				return nil, fmt.Errorf("import: keyword text is empty: %w", domain.ErrInvalidInput)
			}
			if textIndex(keywords, kw.Text) >= 0 {
				logger.Debug("import: skipping existing keyword %q", kw.Text)
				continue
			}
			if kw.Color == "" {
				kw.Color = s.defaultColor()
			}
			kw.Color = domain.ResolveColor(kw.Color)
			if err := domain.ValidateColor(kw.Color); err != nil {
				return nil, fmt.Errorf("import %q: %q: %w", kw.Text, kw.Color, err)
			}
			if kw.ID == "" || domain.FindKeyword(keywords, kw.ID) >= 0 {
				kw.ID = uuid.New().String()
			}
			if kw.CreatedAt.IsZero() {
				kw.CreatedAt = now
			}
			if kw.LastUsed.IsZero() {
				kw.LastUsed = now
			}
			keywords = append(keywords, kw)
			added++
		}
		return keywords, nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// mutate runs a read-modify-save cycle on the stored list.
func (s *KeywordService) mutate(
	ctx context.Context,
	fn func([]domain.Keyword) ([]domain.Keyword, error),
) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	keywords, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	next, err := fn(keywords)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return nil
}

// defaultColor returns the configured colour for new keywords.
func (s *KeywordService) defaultColor() string {
	if s.settings == nil {
		return domain.DefaultColor
	}
	settings, err := s.settings.Get()
	if err != nil || settings.Highlight.DefaultColor == "" {
		return domain.DefaultColor
	}
	return settings.Highlight.DefaultColor
}

// textIndex returns the index of the keyword with exactly text, or -1.
func textIndex(keywords []domain.Keyword, text string) int {
	for i := range keywords {
		if keywords[i].Text == text {
			return i
		}
	}
	return -1
}
