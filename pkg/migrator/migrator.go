package migrator

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/ghuser/smartfridge/pkg/database"
)

// Dialect returns the goose dialect for a database/sql driver name.
func Dialect(sqlDriver string) (string, error) {
	switch sqlDriver {
	case database.SQLDriverPostgres:
		return "postgres", nil
	case database.SQLDriverMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("migrator: unsupported driver %q", sqlDriver)
	}
}

// RunMigrations applies every pending goose migration found at the root of
// files to the database at dsn.
func RunMigrations(sqlDriver, dsn string, files fs.FS) error {
	dialect, err := Dialect(sqlDriver)
	if err != nil {
		return err
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	goose.SetBaseFS(files)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	return nil
}
