package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteAdapter is the embedded-file backend, meant for local development
// and tests. No external process is involved.
type SQLiteAdapter struct {
	db *sql.DB
}

func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting busy_timeout: %w", err)
	}

	return &SQLiteAdapter{db: db}, nil
}

func (a *SQLiteAdapter) DB() *sql.DB {
	return a.db
}

func (a *SQLiteAdapter) Kind() Kind {
	return Embedded
}

func (a *SQLiteAdapter) HealthCheck(ctx context.Context) bool {
	return healthProbe(ctx, a.db)
}

func (a *SQLiteAdapter) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("closing sqlite database: %w", err)
	}
	return nil
}
