// Package database owns the shared *sql.DB connection pool and the scoped
// transaction helper used by every SQL-backed repository.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/smartfridge/pkg/config"
	"github.com/ghuser/smartfridge/pkg/logger"
)

// database/sql driver names registered by the blank imports above.
const (
	SQLDriverPostgres = "pgx"
	SQLDriverMySQL    = "mysql"
)

// Database wraps a *sql.DB together with the driver it was opened with.
type Database struct {
	db     *sql.DB
	driver string
	log    logger.Logger
}

// SQLDriver maps a config storage driver to its database/sql driver name.
func SQLDriver(storageDriver string) (string, error) {
	switch storageDriver {
	case config.DriverPostgres:
		return SQLDriverPostgres, nil
	case config.DriverMySQL:
		return SQLDriverMySQL, nil
	default:
		return "", fmt.Errorf("database: no sql driver for storage driver %q", storageDriver)
	}
}

// NewPool opens a pool for the given database/sql driver and verifies it with
// a ping bounded by a 5 s deadline.
func NewPool(ctx context.Context, driver, dsn string, log logger.Logger) (*Database, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", driver, err)
	}

	return &Database{db: db, driver: driver, log: log}, nil
}

// New wraps an already opened *sql.DB.
func New(db *sql.DB, driver string, log logger.Logger) *Database {
	return &Database{db: db, driver: driver, log: log}
}

// DB returns the underlying pool for non-transactional queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Driver returns the database/sql driver name the pool was opened with.
func (d *Database) Driver() string {
	return d.driver
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when fn returns an error or panics; a panic is
// re-raised after the rollback.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && d.log != nil {
				d.log.ErrorContext(ctx, "database: rollback failed", "error", rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("database: commit tx: %w", err)
	}
	return nil
}

// Ping checks the database connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (d *Database) Close() {
	if err := d.db.Close(); err != nil && d.log != nil {
		d.log.Error("database: close failed", "error", err)
	}
}
