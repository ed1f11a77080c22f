package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rbconsole/pkg/platform/sentinel"
)

const createStateTable = `
	CREATE TABLE IF NOT EXISTS console_state (
		namespace  TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      BYTEA       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, key)
	)
`

// PostgresBackend keeps console state in the console_state table.
type PostgresBackend struct {
	db        *sql.DB
	namespace string
	owned     bool
}

// PostgresOption configures a PostgresBackend.
type PostgresOption func(*PostgresBackend)

// WithOwnedDB closes the pool when the backend is closed.
func WithOwnedDB() PostgresOption {
	return func(b *PostgresBackend) { b.owned = true }
}

func NewPostgresBackend(db *sql.DB, namespace string, opts ...PostgresOption) *PostgresBackend {
	b := &PostgresBackend{db: db, namespace: namespace}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// EnsureSchema creates the state table if it is missing.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, createStateTable); err != nil {
		return fmt.Errorf("create console_state: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT value FROM console_state WHERE namespace = $1 AND key = $2`,
		b.namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (b *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO console_state (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := b.db.ExecContext(ctx, query, b.namespace, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (b *PostgresBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := b.db.ExecContext(ctx,
		`DELETE FROM console_state WHERE namespace = $1 AND key = ANY($2)`,
		b.namespace, pq.Array(keys),
	)
	if err != nil {
		return fmt.Errorf("delete state keys: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Close() error {
	if b.owned {
		return b.db.Close()
	}
	return nil
}
