package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrationRunner is the slice of *migrate.Migrate that RunMigrations needs.
type migrationRunner interface {
	Up() error
	Close() (source error, database error)
}

var newMigrate = func(sourceURL, dsn string) (migrationRunner, error) {
	return migrate.New(sourceURL, dsn)
}

// RunMigrations applies all pending migrations from migrationsPath at startup.
// An already-current schema is not an error.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := newMigrate(fmt.Sprintf("file://%s", migrationsPath), dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
