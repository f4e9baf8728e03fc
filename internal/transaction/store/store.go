package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Dialect selects the placeholder syntax of the underlying database.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}

	return "?"
}

// Store keeps ledger state in the ledger_state key-value table.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Load(ctx context.Context, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))

	for i, k := range keys {
		placeholders[i] = s.dialect.placeholder(i + 1)
		args[i] = k
	}

	query := `SELECT key, value FROM ledger_state WHERE key IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading ledger state: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning ledger state: %w", err)
		}

		out[key] = []byte(value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger state: %w", err)
	}

	return out, nil
}

// Save upserts all entries inside one database transaction.
func (s *Store) Save(ctx context.Context, entries map[string][]byte) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO ledger_state (key, value, updated_at)
		VALUES (%s, %s, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.dialect.placeholder(1), s.dialect.placeholder(2))

	for key, value := range entries {
		if _, err := dbTx.ExecContext(ctx, query, key, string(value)); err != nil {
			return fmt.Errorf("writing %s: %w", key, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
