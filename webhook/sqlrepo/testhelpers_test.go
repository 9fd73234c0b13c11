//go:build integration

package sqlrepo

import (
	"context"
	"testing"
	"time"

	"github.com/marcelsud/webhook-vault/storage"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

/* Test helpers for the networked backend.
 *
 * A real PostgreSQL container is started per test and destroyed afterwards.
 * Run with: go test -tags=integration ./webhook/sqlrepo/...
 *
 * Requires Docker. To share a container across tests:
 *   export TESTCONTAINERS_REUSE_ENABLE=true
 */

const (
	defaultDatabase = "testdb"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// SetupPostgresAdapter starts a postgres container, migrates the schema and
// returns a ready storage adapter plus a cleanup func.
func SetupPostgresAdapter(t *testing.T, ctx context.Context) (storage.Adapter, func()) {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(defaultDatabase),
		postgres.WithUsername(defaultUser),
		postgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	adapter, err := storage.NewPostgresAdapter(connStr)
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(ctx, adapter))

	cleanup := func() {
		_ = adapter.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return adapter, cleanup
}
