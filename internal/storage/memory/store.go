// Package memory is an in-process KV for tests and single-instance runs.
// Contents are lost on restart.
package memory

import (
	"context"
	"sync"

	"daleel/internal/adapters/observability"
	"daleel/internal/domain"
)

type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

func New() *Store { return &Store{data: map[string]string{}} }

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		observability.ObserveStore("memory", "miss")
		return "", domain.ErrKeyNotFound
	}
	observability.ObserveStore("memory", "hit")
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	observability.ObserveStore("memory", "set")
	s.data[key] = value
	return nil
}
