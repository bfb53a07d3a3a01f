package main

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/huddle/internal/server/handler"
	servermw "github.com/garrettladley/huddle/internal/server/middleware"
	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/xhttp/middleware"
)

func newRouter(
	logger *slog.Logger,
	store storage.NotificationStore,
	tokens servermw.TokenValidator,
	limiter storage.RateLimiter,
	opts ...handler.NotificationsOption,
) http.Handler {
	notificationsHandler := handler.NewNotifications(store, opts...)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.HandleHealth)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/v1/notifications", notificationsHandler.HandleList)
	apiMux.HandleFunc("POST /api/v1/notifications", notificationsHandler.HandleCreate)
	apiMux.HandleFunc("POST /api/v1/notifications/{id}/read", notificationsHandler.HandleMarkRead)
	mux.Handle("/api/v1/", middleware.Chain(apiMux,
		servermw.BearerAuth(tokens),
		servermw.RateLimit(limiter),
	))

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Logging,
		middleware.SecurityHeaders,
	)
}
