package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/EldritchWeaver/MatchPoint/db/migrations"
	_ "modernc.org/sqlite" // sqlite driver
)

// Open opens the SQLite database at path and applies the embedded schema
// migrations. The pool is capped at one connection so that every
// check-then-write sequence observes a consistent snapshot: the store serves
// a single logical writer at a time.
func Open(path string, timeout time.Duration) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	if _, err = sqlDB.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err = ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return sqlDB, nil
}
