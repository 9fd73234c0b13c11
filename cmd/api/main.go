package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/marcelsud/webhook-vault/config"
	"github.com/marcelsud/webhook-vault/internal/http/chi"
	"github.com/marcelsud/webhook-vault/metrics"
	"github.com/marcelsud/webhook-vault/storage"
	"github.com/marcelsud/webhook-vault/webhook"
	"github.com/marcelsud/webhook-vault/webhook/sqlrepo"
)

const TIMEOUT = 30 * time.Second

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	if cfg.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			Release:     cfg.SentryRelease,
		})
		if err != nil {
			fmt.Println(err)
			return
		}
		defer sentry.Flush(2 * time.Second)
	}

	adapter, err := storage.Open(storage.Config{
		SQLiteDBPath:     cfg.SQLiteDBPath,
		TursoDatabaseURL: cfg.TursoDatabaseURL,
		TursoAuthToken:   cfg.TursoAuthToken,
		DBName:           cfg.DBName,
		DatabaseURL:      cfg.DatabaseURL,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer adapter.Close()

	if err = storage.Migrate(ctx, adapter); err != nil {
		fmt.Println(err)
		return
	}

	repo := sqlrepo.NewRepository(adapter)
	s := webhook.NewService(repo)

	exporter, err := metrics.NewOTelExporter(metrics.NewStoreCollector(repo))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(context.Background())

	r := chi.Handlers(cfg, adapter, s, exporter)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s (adapter: %s)\n", cfg.Port, adapter.Kind())
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
