package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"daleel/internal/adapters/observability"
	"daleel/internal/domain"
)

// Store is the review KV kept in a single MySQL table.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// Migrate creates the kv_entries table if it is missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createKVTableSQL); err != nil {
		return fmt.Errorf("create kv_entries: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, getKVSQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveStore("mysql", "miss")
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		observability.ObserveStore("mysql", "error")
		return "", err
	}
	observability.ObserveStore("mysql", "hit")
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	observability.ObserveStore("mysql", "set")
	_, err := s.db.ExecContext(ctx, upsertKVSQL, key, value)
	return err
}
