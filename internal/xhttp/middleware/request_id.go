package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/huddle/internal/xcontext"
	"github.com/garrettladley/huddle/internal/xhttp"
)

type requestIDConfig struct {
	newID func() string
}

type RequestIDOption func(*requestIDConfig)

// WithIDFunc replaces the generator used when a request carries no usable ID.
func WithIDFunc(fn func() string) RequestIDOption {
	return func(c *requestIDConfig) { c.newID = fn }
}

// RequestID tags the request and response with an ID. A UUID sent by the
// client in X-Request-ID is reused so agent and server logs correlate.
func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	cfg := requestIDConfig{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := xhttp.GetRequestHeaderRequestID(r)
			if _, err := uuid.Parse(id); err != nil {
				id = cfg.newID()
			}

			ctx := xcontext.SetRequestID(r.Context(), id)
			xhttp.SetHeaderRequestID(w, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
