package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresAdapter is the networked backend. Unlike the other two it holds
// a live connection pool, sized for typical managed-postgres limits.
type PostgresAdapter struct {
	db *sql.DB
}

func NewPostgresAdapter(connectionString string) (*PostgresAdapter, error) {
	return NewPostgresAdapterWithPoolConfig(connectionString, 25, 5, 5)
}

// NewPostgresAdapterWithPoolConfig opens the pool with explicit limits.
// maxOpenConns: maximum simultaneous connections (0 = unlimited)
// maxIdleConns: idle connections kept in the pool
// maxLifeMinutes: maximum minutes a connection is reused
func NewPostgresAdapterWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*PostgresAdapter, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &PostgresAdapter{db: db}, nil
}

func (a *PostgresAdapter) DB() *sql.DB {
	return a.db
}

func (a *PostgresAdapter) Kind() Kind {
	return Networked
}

func (a *PostgresAdapter) HealthCheck(ctx context.Context) bool {
	return healthProbe(ctx, a.db)
}

func (a *PostgresAdapter) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("closing postgres connection: %w", err)
	}
	return nil
}
