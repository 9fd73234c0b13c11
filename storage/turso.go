package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tursodatabase/go-libsql"
)

// TursoAdapter is the serverless backend: a libSQL embedded replica that
// syncs against a remote Turso database.
type TursoAdapter struct {
	db        *sql.DB
	dir       string
	connector *libsql.Connector
}

func NewTursoAdapter(dbName, url, authToken string) (*TursoAdapter, error) {
	dir, err := os.MkdirTemp("", "libsql-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbName)
	syncInterval := time.Second * 30

	connector, err := libsql.NewEmbeddedReplicaConnector(dbPath, url,
		libsql.WithAuthToken(authToken),
		libsql.WithSyncInterval(syncInterval),
	)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("creating connector: %w", err)
	}
	db := sql.OpenDB(connector)
	return &TursoAdapter{
		db:        db,
		dir:       dir,
		connector: connector,
	}, nil
}

func (a *TursoAdapter) DB() *sql.DB {
	return a.db
}

func (a *TursoAdapter) Kind() Kind {
	return Serverless
}

func (a *TursoAdapter) HealthCheck(ctx context.Context) bool {
	return healthProbe(ctx, a.db)
}

func (a *TursoAdapter) Close() error {
	if err := os.RemoveAll(a.dir); err != nil {
		return fmt.Errorf("removing temporary directory: %w", err)
	}
	if err := a.connector.Close(); err != nil {
		return fmt.Errorf("closing connector: %w", err)
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
