// Package storage opens the SQLite databases TaskFlow runs on and applies
// the embedded goose migrations.
//
// Two databases are used at runtime: a file-backed one holding the persisted
// session (the durable key/value store) and an in-memory one holding tasks,
// which therefore reset whenever the process restarts.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskflow/internal/filex"
	"github.com/dmitrijs2005/taskflow/internal/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB) error {
	return goose.UpContext(ctx, db, ".")
}

// RunMigrations applies all pending migrations to db. Running it on an
// up-to-date database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUp(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// IsMemoryDSN reports whether dsn names an in-memory SQLite database.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
//
// In-memory databases are pinned to a single connection: every new
// connection to ":memory:" would otherwise see its own empty database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if IsMemoryDSN(dsn) {
		return open(ctx, dsn, 1)
	}
	if _, err := filex.EnsureParentDir(strings.TrimPrefix(dsn, "file:")); err != nil {
		return nil, err
	}
	return open(ctx, dsn, 0)
}

func open(ctx context.Context, dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
