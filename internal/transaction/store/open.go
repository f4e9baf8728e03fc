package store

import (
	"fmt"

	"github.com/MrJamesThe3rd/kakeibo/internal/config"
	"github.com/MrJamesThe3rd/kakeibo/internal/database"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

// Open returns the repository selected by cfg.Storage.Backend together with a
// function that releases it.
func Open(cfg *config.Config) (transaction.Repository, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemory(), func() error { return nil }, nil
	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.ConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		return New(db, Postgres), db.Close, nil
	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite: %w", err)
		}

		return New(db, SQLite), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
