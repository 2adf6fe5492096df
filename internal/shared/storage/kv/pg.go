package kv

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore implements Store on a Postgres table.
type PGStore struct {
	DB *sql.DB
}

// Get returns the value for a key.
func (s *PGStore) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM kv_records WHERE key = $1`
	var value string
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set upserts the value under a key.
func (s *PGStore) Set(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO kv_records (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	_, err := s.DB.ExecContext(ctx, query, key, value)
	return err
}

var _ Store = (*PGStore)(nil)
