package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetValue returns the value stored under key. The boolean is false when the
// key has never been written.
func GetValue(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get value: %w", err)
	}
	return value, true, nil
}

// PutValue stores value under key, replacing any previous value.
func PutValue(ctx context.Context, db *sql.DB, key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to put value: %w", err)
	}
	return nil
}

// DeleteValue removes key. Deleting a missing key is not an error.
func DeleteValue(ctx context.Context, db *sql.DB, key string) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// KV exposes the kv table as a key-value store.
type KV struct {
	db *sql.DB
}

// NewKV wraps an open database.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	return GetValue(ctx, s.db, key)
}

func (s *KV) Put(ctx context.Context, key, value string) error {
	return PutValue(ctx, s.db, key, value)
}

func (s *KV) Delete(ctx context.Context, key string) error {
	return DeleteValue(ctx, s.db, key)
}
