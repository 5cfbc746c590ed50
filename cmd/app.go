package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/angeloszaimis/demo-api/config"
	"github.com/angeloszaimis/demo-api/internal/cors"
	"github.com/angeloszaimis/demo-api/internal/httpserver"
	"github.com/angeloszaimis/demo-api/internal/metrics"
)

type app struct {
	cfg       *config.Config
	log       *slog.Logger
	collector *metrics.Collector
	server    *httpserver.Server
}

func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	if cfg.Metrics.Enabled {
		a.collector = metrics.NewCollector(cfg.Metrics.BufferSize, log.With(slog.String("component", "metrics")))
	}

	if cors.FromConfig(cfg.CORS).Insecure() {
		log.Warn("CORS allows any origin together with credentials; browsers reject credentialed requests under this policy")
	}

	srv, err := httpserver.New(cfg.Server.Address, buildHandler(cfg, log, a.collector))
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	a.server = srv

	return a, nil
}

// run binds the configured address and serves until ctx is cancelled.
// Failing to bind returns immediately; there is no retry.
func (a *app) run(ctx context.Context) error {
	if err := a.server.Listen(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if a.collector != nil {
		a.collector.Start(ctx)
	}

	a.log.Info("Listening",
		slog.String("addr", a.server.Addr()),
		slog.String("prefix", a.cfg.Server.Prefix),
		slog.String("environment", a.cfg.Server.Environment))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- a.server.Serve()
	}()

	select {
	case <-ctx.Done():
		a.log.Info("Shutting down gracefully...")
		if err := a.server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("error during shutdown: %w", err)
		}
		return nil
	case err := <-srvErrCh:
		return err
	}
}
