package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	Port        string `mapstructure:"PORT"`

	// Database backend selection. Startup priority:
	// TURSO_DATABASE_URL > DATABASE_URL > SQLITE_DB_PATH.
	SQLiteDBPath     string `mapstructure:"SQLITE_DB_PATH"`
	TursoDatabaseURL string `mapstructure:"TURSO_DATABASE_URL"`
	TursoAuthToken   string `mapstructure:"TURSO_AUTH_TOKEN"`
	DBName           string `mapstructure:"DBNAME"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	WebhookSecret string `mapstructure:"WEBHOOK_SECRET"`

	SentryDSN         string `mapstructure:"SENTRY_DSN"`
	SentryEnvironment string `mapstructure:"SENTRY_ENVIRONMENT"`
	SentryRelease     string `mapstructure:"SENTRY_RELEASE"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Defaults double as env bindings: AutomaticEnv only resolves keys
	// viper already knows about.
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SQLITE_DB_PATH", "")
	viper.SetDefault("TURSO_DATABASE_URL", "")
	viper.SetDefault("TURSO_AUTH_TOKEN", "")
	viper.SetDefault("DBNAME", "local.db")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("WEBHOOK_SECRET", "")
	viper.SetDefault("SENTRY_DSN", "")
	viper.SetDefault("SENTRY_ENVIRONMENT", "")
	viper.SetDefault("SENTRY_RELEASE", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	err := viper.ReadInConfig()
	if err != nil {
		// The .env file is optional; the environment alone is enough.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}
