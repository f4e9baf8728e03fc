package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Migrate applies the embedded migrations on a dedicated connection; the
// migrate instance closes that connection when done.
func Migrate(driver Driver, dsn string) error {
	var (
		sqlDriver string
		open      func(*sql.DB) (migratedb.Driver, error)
	)

	switch driver {
	case DriverPostgres:
		sqlDriver = "pgx"
		open = func(db *sql.DB) (migratedb.Driver, error) {
			return pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		}
	case DriverSQLite:
		sqlDriver = "sqlite"
		open = func(db *sql.DB) (migratedb.Driver, error) {
			return sqlite.WithInstance(db, &sqlite.Config{})
		}
	default:
		return fmt.Errorf("unknown migration driver: %s", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return fmt.Errorf("opening migration database: %w", err)
	}
	defer db.Close()

	dbDriver, err := open(db)
	if err != nil {
		return fmt.Errorf("creating %s migration driver: %w", driver, err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(driver), dbDriver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
