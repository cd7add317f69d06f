// Package repository provides database access layer.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Options tunes the connection pool. Zero values fall back to the
// driver defaults.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Logger          *slog.Logger
}

// Repository provides database access methods.
type Repository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// New creates a new Repository with a connection pool.
//
// The databaseURL is a mysql:// URL. The first connection attempt honors
// the URL's ssl-mode; if it fails, one retry is made with TLS disabled.
// A second failure is returned to the caller.
func New(ctx context.Context, databaseURL string, opts Options) (*Repository, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	db, err := open(ctx, cfg.FormatDSN(), opts)
	if err != nil {
		logger.Error("database connection failed, retrying with TLS disabled", "error", err)

		fallback := withTLSDisabled(cfg)
		db, err = open(ctx, fallback.FormatDSN(), opts)
		if err != nil {
			return nil, fmt.Errorf("failed to connect with TLS disabled: %w", err)
		}
		logger.Info("connected to database with TLS disabled")
	}

	return &Repository{db: db, logger: logger}, nil
}

// open dials the database and verifies the connection with a ping.
func open(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

// DB returns the underlying connection pool.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) DB() *sqlx.DB {
	return r.db
}

// WithTx runs fn inside a transaction. The transaction is committed when
// fn returns nil and rolled back otherwise.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
