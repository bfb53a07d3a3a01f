package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/huddle/internal/migrations/postgres"
	"github.com/garrettladley/huddle/internal/server"
	"github.com/garrettladley/huddle/internal/server/handler"
	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/xslog"
)

const (
	keyPort   = "port"
	keyEnv    = "environment"
	keyTokens = "auth_tokens"

	shutdownTimeout = 30 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	tokens, err := server.ParseAuthTokens(cfg.AuthTokens)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		logger.WarnContext(ctx, "AUTH_TOKENS is empty, every API request will be rejected")
	}

	store, err := initNotificationStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize notification store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close notification store", xslog.Error(err))
		}
	}()

	limiter := storage.NewMemoryRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Burst)

	var handlerOpts []handler.NotificationsOption
	if cfg.Env.IsDevelopment() {
		handlerOpts = append(handlerOpts, handler.WithCrossUserCreate())
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(logger, store, server.NewTokenValidator(tokens), limiter, handlerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port),
			slog.String(keyEnv, string(cfg.Env)),
			slog.Int(keyTokens, len(tokens)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initNotificationStore(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.NotificationStore, error) {
	if cfg.DatabaseURL == "" {
		logger.InfoContext(ctx, "initializing in-memory notification store")
		return storage.NewMemoryNotificationStore(), nil
	}

	logger.InfoContext(ctx, "initializing PostgreSQL notification store")

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := postgres.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return storage.NewPostgresNotificationStore(pool), nil
}
