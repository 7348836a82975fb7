// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

// Package sqlite provides the managed SQLite database handle for the
// Plinth application.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It opens the single
// file-backed database, applies connection pragmas, and runs the embedded
// schema migrations so the database is always in the correct state before
// traffic is served.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// pingTimeout is the maximum duration for a health check ping.
const pingTimeout = 2 * time.Second

// Open creates a validated SQLite handle and applies pending migrations.
//
// # Parameters
//   - ctx: Context for connection validation and pragma setup.
//   - dbPath: Path to the database file. ":memory:" yields an in-memory
//     database, which is useful for testing.
//   - logger: Structured logger for storage-level events.
func Open(ctx context.Context, dbPath string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// SQLite with WAL mode supports concurrent readers but only one writer.
	// A single connection serializes writes at the pool level instead of
	// surfacing SQLITE_BUSY to handlers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: failed to set pragma: %w", err)
		}
	}

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite database ready", slog.String("path", dbPath))

	return db, nil
}

// Ping verifies that the database handle is healthy.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}

	return nil
}

// runMigrations applies all pending UP migrations from the embedded FS.
// Goose keeps a version table, so repeated startups are idempotent.
func runMigrations(db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sqlite: failed to set migration dialect: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("sqlite: migrations failed: %w", err)
	}

	return nil
}
