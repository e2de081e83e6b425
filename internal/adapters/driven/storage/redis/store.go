// Package redis provides a Redis-backed keyword store.
//
// The list is kept as one JSON array under a single key, and every Save is
// published on "<key>:changes" so other processes can re-apply keywords.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.KeywordStore   = (*Store)(nil)
	_ driven.ChangeNotifier = (*Store)(nil)
)

// DefaultKey is the key holding the keyword list.
const DefaultKey = "highlighter_keywords"

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Store keeps the keyword list in Redis.
type Store struct {
	rdb *redis.Client
	key string
}

// NewStore creates a Redis keyword store and verifies the connection with a PING.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is empty: %w", domain.ErrInvalidInput)
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Store{rdb: rdb, key: cfg.Key}, nil
}

// Key returns the key holding the keyword list.
func (s *Store) Key() string {
	return s.key
}

// Channel returns the pub/sub channel carrying changes.
func (s *Store) Channel() string {
	return s.key + ":changes"
}

// List returns the stored keywords. A missing key is an empty list.
func (s *Store) List(ctx context.Context) ([]domain.Keyword, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Keyword{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.key, err)
	}
	return decodeKeywords(data)
}

// Save replaces the stored list and publishes the change.
func (s *Store) Save(ctx context.Context, keywords []domain.Keyword) error {
	if keywords == nil {
		keywords = []domain.Keyword{}
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}

	// SET ... GET swaps the value and returns the previous one in one round trip.
	prev, err := s.rdb.SetArgs(ctx, s.key, data, redis.SetArgs{Get: true}).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}

	old, err := decodeKeywords(prev)
	if err != nil {
		logger.Warn("previous keyword list unreadable: %v", err)
		old = []domain.Keyword{}
	}

	payload, err := json.Marshal(domain.KeywordChange{Old: old, New: keywords})
	if err != nil {
		return fmt.Errorf("encoding change: %w", err)
	}
	if err := s.rdb.Publish(ctx, s.Channel(), payload).Err(); err != nil {
		return fmt.Errorf("publishing change: %w", err)
	}
	return nil
}

// Subscribe returns a channel receiving changes saved by any process.
// The channel closes when ctx is cancelled.
func (s *Store) Subscribe(ctx context.Context) (<-chan domain.KeywordChange, error) {
	ps := s.rdb.Subscribe(ctx, s.Channel())
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", s.Channel(), err)
	}

	out := make(chan domain.KeywordChange)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var change domain.KeywordChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					logger.Warn("ignoring malformed change on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close closes the underlying Redis connection.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// decodeKeywords parses a stored list. Empty input is an empty list.
func decodeKeywords(data []byte) ([]domain.Keyword, error) {
	keywords := []domain.Keyword{}
	if len(data) == 0 {
		return keywords, nil
	}
	if err := json.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("decoding keywords: %w", err)
	}
	return keywords, nil
}
