package chi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"

	"github.com/marcelsud/webhook-vault/config"
	"github.com/marcelsud/webhook-vault/metrics"
	"github.com/marcelsud/webhook-vault/storage"
	"github.com/marcelsud/webhook-vault/webhook"
)

func Handlers(cfg *config.Config, adapter storage.Adapter, webhookService webhook.UseCase, exporter *metrics.OTelExporter) *chi.Mux {
	// Logger
	logger := httplog.NewLogger("webhook-vault", httplog.Options{
		JSON:     true,
		LogLevel: cfg.LogLevel,
	})

	r := chi.NewRouter()
	r.Use(correlationID)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(attachAdapter(adapter))
	r.Use(securityHeaders)
	r.Use(cors.Handler(corsOptions(cfg)))

	r.Method(http.MethodGet, "/v1/health", handle(getHealth(cfg)))
	r.Method(http.MethodPost, "/v1/webhooks/receive", handle(postWebhook(webhookService, cfg.WebhookSecret)))
	r.Method(http.MethodGet, "/v1/webhooks", handle(getWebhooks(webhookService)))
	r.Method(http.MethodGet, "/v1/webhooks/{id}", handle(getWebhook(webhookService)))
	r.Method(http.MethodPost, "/v1/auth/token", handle(postToken(cfg.JWTSecret)))
	r.Method(http.MethodGet, "/v1/auth/me", handle(getMe(cfg.JWTSecret)))

	if exporter != nil {
		r.Method(http.MethodGet, "/metrics", exporter.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFoundError(fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path)))
	})

	return r
}

func corsOptions(cfg *config.Config) cors.Options {
	var origins []string
	for _, origin := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "x-webhook-signature", CorrelationHeader},
		ExposedHeaders: []string{CorrelationHeader},
		MaxAge:         86400,
	}
}
