package chi

import (
	"context"
	"database/sql"

	"github.com/marcelsud/webhook-vault/config"
	"github.com/marcelsud/webhook-vault/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:        "test",
		LogLevel:           "error",
		Port:               "3000",
		JWTSecret:          "test-jwt-secret",
		CORSAllowedOrigins: "*",
	}
}

type stubAdapter struct {
	kind    storage.Kind
	healthy bool
}

func (s *stubAdapter) DB() *sql.DB                      { return nil }
func (s *stubAdapter) Kind() storage.Kind               { return s.kind }
func (s *stubAdapter) HealthCheck(context.Context) bool { return s.healthy }
func (s *stubAdapter) Close() error                     { return nil }
