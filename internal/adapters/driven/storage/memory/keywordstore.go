package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
)

// Ensure KeywordStore implements the interfaces.
var (
	_ driven.KeywordStore   = (*KeywordStore)(nil)
	_ driven.ChangeNotifier = (*KeywordStore)(nil)
)

// subscriberBuffer is the channel capacity of each subscriber.
const subscriberBuffer = 16

// KeywordStore is an in-memory implementation of driven.KeywordStore.
// It also notifies subscribers of every Save, like a synchronised store.
type KeywordStore struct {
	mu          sync.RWMutex
	keywords    []domain.Keyword
	subscribers map[chan domain.KeywordChange]struct{}
}

// NewKeywordStore creates a new in-memory keyword store holding keywords.
func NewKeywordStore(keywords ...domain.Keyword) *KeywordStore {
	return &KeywordStore{
		keywords:    copyKeywords(keywords),
		subscribers: make(map[chan domain.KeywordChange]struct{}),
	}
}

// List returns a copy of the stored keywords.
func (s *KeywordStore) List(_ context.Context) ([]domain.Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyKeywords(s.keywords), nil
}

// Save replaces the stored list and notifies subscribers.
// A subscriber that is not keeping up loses its oldest pending change,
// so the latest list is always delivered.
func (s *KeywordStore) Save(_ context.Context, keywords []domain.Keyword) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := domain.KeywordChange{
		Old: s.keywords,
		New: copyKeywords(keywords),
	}
	s.keywords = change.New

	for ch := range s.subscribers {
		deliverLatest(ch, domain.KeywordChange{Old: copyKeywords(change.Old), New: copyKeywords(change.New)})
	}
	return nil
}

// deliverLatest queues change on ch, evicting the oldest pending change
// while the buffer is full. Callers hold the store lock, which makes them
// the only sender.
func deliverLatest(ch chan domain.KeywordChange, change domain.KeywordChange) {
	for {
		select {
		case ch <- change:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe returns a channel receiving every subsequent Save.
func (s *KeywordStore) Subscribe(ctx context.Context) (<-chan domain.KeywordChange, error) {
	ch := make(chan domain.KeywordChange, subscriberBuffer)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

func copyKeywords(keywords []domain.Keyword) []domain.Keyword {
	if keywords == nil {
		return []domain.Keyword{}
	}
	return append([]domain.Keyword(nil), keywords...)
}
