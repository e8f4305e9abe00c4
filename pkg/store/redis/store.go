package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "eightball:answer:"

// Store is an answer store backed by Redis. Entries are written without
// expiration; the answer cache has no TTL.
type Store struct {
	client *redis.Client
}

// New constructs a Redis-backed answer store from a connection URL.
func New(rawURL string) (*Store, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Store{client: client}, nil
}

// Get retrieves a stored answer if present.
func (s *Store) Get(ctx context.Context, question string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+question).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %q: %w", question, err)
	}
	return data, true, nil
}

// Set stores an answer, replacing any previous entry for the question.
func (s *Store) Set(ctx context.Context, question string, answer []byte) error {
	if err := s.client.Set(ctx, keyPrefix+question, answer, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", question, err)
	}
	return nil
}

// Close terminates the underlying Redis client connections.
func (s *Store) Close() error {
	return s.client.Close()
}
