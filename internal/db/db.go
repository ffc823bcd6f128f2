// Package db reads and writes event datasets stored in SQLite files.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// DB wraps the SQL database connection of one dataset file.
type DB struct {
	*sql.DB
	path     string
	readOnly bool
}

// Open opens an existing dataset database read-only.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open dataset database: %w", err)
	}

	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := connect(dsn, path, true)
	if err != nil {
		return nil, err
	}

	if err := db.configure([]string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA query_only=ON",
	}); err != nil {
		_ = db.DB.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	return db, nil
}

// Create creates (or truncates the events table of) a dataset database
// with the given columns.
func Create(path string, columns []string) (*DB, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := connect(path, path, false)
	if err != nil {
		return nil, err
	}

	if err := db.configure([]string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createEventsTable(columns); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

func connect(dsn, path string, readOnly bool) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{DB: sqlDB, path: path, readOnly: readOnly}, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// ReadOnly reports whether the database was opened with Open.
func (db *DB) ReadOnly() bool {
	return db.readOnly
}

func (db *DB) configure(pragmas []string) error {
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	if !db.readOnly {
		// Checkpoint WAL before closing
		_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	}
	return db.DB.Close()
}

// Vacuum performs database maintenance to reclaim space.
func (db *DB) Vacuum() error {
	if db.readOnly {
		return fmt.Errorf("vacuum %s: database is read-only", db.path)
	}
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}
