package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

var errBackendDown = errors.New("backend down")

// failingStore is a keyword store whose every call fails.
type failingStore struct{}

func (failingStore) List(context.Context) ([]domain.Keyword, error) { return nil, errBackendDown }
func (failingStore) Save(context.Context, []domain.Keyword) error   { return errBackendDown }

// recordingMetrics records observations for assertions.
type recordingMetrics struct {
	mu       sync.Mutex
	passes   []string
	failures int
	applies  int
	total    int
}

func (m *recordingMetrics) ObservePass(keyword string, _ int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passes = append(m.passes, keyword)
	if err != nil {
		m.failures++
	}
}

func (m *recordingMetrics) ObserveApply(_, total int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applies++
	m.total = total
}

// countingStore wraps a keyword store and counts List calls.
type countingStore struct {
	mu    sync.Mutex
	lists int
	inner interface {
		List(context.Context) ([]domain.Keyword, error)
		Save(context.Context, []domain.Keyword) error
	}
}

func (s *countingStore) List(ctx context.Context) ([]domain.Keyword, error) {
	s.mu.Lock()
	s.lists++
	s.mu.Unlock()
	return s.inner.List(ctx)
}

func (s *countingStore) Save(ctx context.Context, keywords []domain.Keyword) error {
	return s.inner.Save(ctx, keywords)
}

func (s *countingStore) Lists() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}
