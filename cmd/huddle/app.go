package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"

	"github.com/garrettladley/huddle/internal/client/api"
	"github.com/garrettladley/huddle/internal/config"
	"github.com/garrettladley/huddle/internal/dispatch"
	"github.com/garrettladley/huddle/internal/oauth"
	"github.com/garrettladley/huddle/internal/paths"
	"github.com/garrettladley/huddle/internal/poller"
	xredis "github.com/garrettladley/huddle/internal/redis"
	"github.com/garrettladley/huddle/internal/seen"
	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/xslog"
)

// app holds everything a command needs. Tokens always live in the local
// SQLite database; the seen-set lives in the configured backend.
type app struct {
	cfg         config.Config
	logger      *slog.Logger
	local       *storage.SQLiteKV
	seenKV      storage.KV
	seen        *seen.Store
	tokenSource oauth2.TokenSource
	dispatcher  *dispatch.Dispatcher
	permissions *dispatch.Permissions
	poller      *poller.Poller
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	logger := xslog.NewLoggerFromEnv(os.Stderr)
	slog.SetDefault(logger)

	local, err := openLocal(ctx)
	if err != nil {
		return nil, err
	}

	seenKV, err := openSeenKV(ctx, cfg, local)
	if err != nil {
		_ = local.Close()
		return nil, err
	}
	logger.DebugContext(ctx, "opened seen-set backend", xslog.Backend(string(cfg.SeenBackend)))

	var tokenSource oauth2.TokenSource
	if cfg.Token != "" {
		tokenSource = oauth.Static(cfg.Token)
	} else {
		tokenSource = oauth.NewStoreTokenSource(cfg.ServerURL, local)
	}

	sink, err := dispatch.NewSink(cfg.NotifyMethod, os.Stdout)
	if err != nil {
		_ = seenKV.Close()
		_ = local.Close()
		return nil, err
	}

	a := &app{
		cfg:         cfg,
		logger:      logger,
		local:       local,
		seenKV:      seenKV,
		seen:        seen.New(seenKV, logger, seen.WithCapacity(cfg.SeenCapacity)),
		tokenSource: tokenSource,
		dispatcher:  dispatch.NewDispatcher(sink, logger),
		permissions: dispatch.NewPermissions(cfg.NotificationsEnabled, sink),
	}

	fetcher := api.New(tokenSource,
		api.WithBaseURL(cfg.ServerURL),
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(logger),
	)
	a.poller = poller.New(fetcher, a.dispatcher, a.permissions, a.seen, logger,
		poller.WithInterval(cfg.PollInterval),
		poller.WithStateStore(local),
	)
	return a, nil
}

func (a *app) Close() error {
	var errs error
	if a.seenKV != storage.KV(a.local) {
		errs = errors.Join(errs, a.seenKV.Close())
	}
	return errors.Join(errs, a.local.Close())
}

func openLocal(ctx context.Context) (*storage.SQLiteKV, error) {
	if _, err := paths.EnsureDir(); err != nil {
		return nil, err
	}
	dbPath, err := paths.DB()
	if err != nil {
		return nil, err
	}
	kv, err := storage.OpenSQLiteKV(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return kv, nil
}

func openSeenKV(ctx context.Context, cfg config.Config, local *storage.SQLiteKV) (storage.KV, error) {
	switch cfg.SeenBackend {
	case config.BackendRedis:
		client, err := xredis.New(ctx, xredis.Config{URL: cfg.RedisURL})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis client: %w", err)
		}
		return storage.NewRedisKV(storage.RedisConfig{
			Client:    client,
			Namespace: cfg.RedisNamespace,
		}), nil
	case config.BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return local, nil
	}
}
