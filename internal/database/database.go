package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	// registers the "postgres" driver
	_ "github.com/lib/pq"
	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// DB wraps the shared store handle together with its SQL dialect.
// It is created once per process and injected into repositories.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Options configures Open
type Options struct {
	Driver   string
	DSN      string
	MaxConns int
}

// Open connects to the store and verifies the connection
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(dialect.Name(), opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if opts.MaxConns > 0 {
		conn.SetMaxOpenConns(opts.MaxConns)
		conn.SetMaxIdleConns(opts.MaxConns / 2)
	}

	log.Debug().Str("driver", dialect.Name()).Msg("Database connection established")

	return New(conn, dialect), nil
}

// New wraps an existing connection pool
func New(conn *sql.DB, dialect Dialect) *DB {
	return &DB{DB: conn, dialect: dialect}
}

// Dialect returns the SQL dialect of the store
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Rebind rewrites a ?-placeholder query for the store
func (db *DB) Rebind(query string) string {
	return db.dialect.Rebind(query)
}

// Transaction runs fn inside a transaction, rolling back when fn fails
func (db *DB) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
