// Package server wires the wallet backend together: storage, the auth
// service and the HTTP endpoint, and runs them until the context ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/peerwallet/internal/logging"
	"github.com/dmitrijs2005/peerwallet/internal/server/config"
	"github.com/dmitrijs2005/peerwallet/internal/server/httpapi"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/memory"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/peerwallet/internal/server/services"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout = 5 * time.Second
	limiterCleanup  = 3 * time.Minute
)

type App struct {
	config  *config.Config
	logger  *logging.ZapLogger
	repos   repomanager.RepositoryManager
	limiter *httpapi.IPRateLimiter
	handler http.Handler
}

// openRepositories picks the in-memory store when no DSN is configured.
func openRepositories(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		return memory.NewManager(), nil
	}

	m, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, err
	}
	return m, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewProductionZap(c.LogLevel)
	if err != nil {
		return nil, err
	}

	repos, err := openRepositories(ctx, c)
	if err != nil {
		return nil, err
	}

	svc := services.NewAuthService(repos, c, logger.With("module", "auth"))
	limiter := httpapi.NewIPRateLimiter(rate.Limit(c.RateLimit), c.RateBurst)
	h := httpapi.NewHandler(svc, logger.With("module", "httpapi"))

	return &App{
		config:  c,
		logger:  logger,
		repos:   repos,
		limiter: limiter,
		handler: httpapi.NewRouter(h, limiter, c.AllowedOrigins, logger),
	}, nil
}

// Handler returns the root HTTP handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// releases storage.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "closing storage", "error", err)
		}
		_ = app.logger.Sync()
	}()

	listener, err := net.Listen("tcp", app.config.EndpointAddr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		app.limiter.Run(ctx, limiterCleanup)
	}()

	go func() {
		defer wg.Done()
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", listener.Addr().String())

	err = srv.Serve(listener)
	wg.Wait()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
