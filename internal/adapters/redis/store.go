package redisad

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"daleel/internal/adapters/observability"
	"daleel/internal/domain"
)

// Store is the review KV backed by plain redis strings without expiry.
type Store struct{ c *redis.Client }

func NewStore(c *redis.Client) *Store { return &Store{c: c} }

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		observability.ObserveStore("redis", "miss")
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		observability.ObserveStore("redis", "error")
		return "", err
	}
	observability.ObserveStore("redis", "hit")
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	observability.ObserveStore("redis", "set")
	return s.c.Set(ctx, key, value, 0).Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}
