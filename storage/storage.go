/* Package storage selects and wraps one of three interchangeable SQL
 * backends behind a single Adapter interface: an embedded SQLite file, a
 * Turso embedded replica (serverless), or a networked PostgreSQL server.
 * The set of backends is fixed; Kind is a closed enumeration.
 */
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Kind identifies which concrete backend an Adapter wraps.
type Kind string

const (
	Embedded   Kind = "embedded"
	Serverless Kind = "serverless"
	Networked  Kind = "networked"
)

// Adapter is the uniform interface over the three backends. HealthCheck
// never returns an error: any probe failure reads as false.
type Adapter interface {
	DB() *sql.DB
	Kind() Kind
	HealthCheck(ctx context.Context) bool
	Close() error
}

// Config carries the connection material for every backend. Which backend
// is used is decided once, by Resolve, at construction time.
type Config struct {
	// Serverless (Turso embedded replica)
	TursoDatabaseURL string
	TursoAuthToken   string
	DBName           string

	// Networked (PostgreSQL)
	DatabaseURL string

	// Embedded (SQLite file). Empty means DBName in the working directory.
	SQLiteDBPath string
}

// Resolve picks the backend kind from the configuration. Priority:
// serverless binding > connection string > embedded-file fallback.
func Resolve(cfg Config) Kind {
	if cfg.TursoDatabaseURL != "" {
		return Serverless
	}
	if cfg.DatabaseURL != "" {
		return Networked
	}
	return Embedded
}

// Open constructs the adapter for the resolved backend. It is called once
// at process startup; the result is shared by every request.
func Open(cfg Config) (Adapter, error) {
	switch Resolve(cfg) {
	case Serverless:
		return NewTursoAdapter(cfg.DBName, cfg.TursoDatabaseURL, cfg.TursoAuthToken)
	case Networked:
		return NewPostgresAdapter(cfg.DatabaseURL)
	default:
		path := cfg.SQLiteDBPath
		if path == "" {
			path = cfg.DBName
		}
		return NewSQLiteAdapter(path)
	}
}

// Migrate creates the webhooks table when missing. Timestamps are stored
// as Unix seconds so the schema reads identically across backends.
func Migrate(ctx context.Context, adapter Adapter) error {
	var ddl string
	if adapter.Kind() == Networked {
		ddl = `CREATE TABLE IF NOT EXISTS webhooks (
			id BIGSERIAL PRIMARY KEY,
			url TEXT NOT NULL,
			method TEXT NOT NULL DEFAULT 'POST',
			headers TEXT NOT NULL,
			body TEXT,
			received_at BIGINT NOT NULL,
			processed_at BIGINT
		)`
	} else {
		ddl = `CREATE TABLE IF NOT EXISTS webhooks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			method TEXT NOT NULL DEFAULT 'POST',
			headers TEXT NOT NULL,
			body TEXT,
			received_at INTEGER NOT NULL,
			processed_at INTEGER
		)`
	}

	mctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := adapter.DB().ExecContext(mctx, ddl); err != nil {
		return fmt.Errorf("creating webhooks table: %w", err)
	}
	return nil
}

// healthProbe runs SELECT 1 against a handle, swallowing any failure.
func healthProbe(ctx context.Context, db *sql.DB) bool {
	if db == nil {
		return false
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var one int
	if err := db.QueryRowContext(pctx, "SELECT 1").Scan(&one); err != nil {
		return false
	}
	return one == 1
}
