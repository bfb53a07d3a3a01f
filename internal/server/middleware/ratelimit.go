package middleware

import (
	"net/http"

	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/xcontext"
	"github.com/garrettladley/huddle/internal/xerrors"
	"github.com/garrettladley/huddle/internal/xhttp"
	"github.com/garrettladley/huddle/internal/xslog"
)

// RateLimit limits requests per authenticated user, falling back to the
// client IP. Must run after BearerAuth.
func RateLimit(limiter storage.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key, ok := xcontext.GetUserID(ctx)
			if !ok {
				key = "ip:" + xhttp.GetRequestIP(r)
			}

			allowed, err := limiter.Allow(ctx, key)
			if err != nil {
				xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("rate limit check failed"), xerrors.WithCause(err)))
				return
			}
			if !allowed {
				xslog.FromContext(ctx).DebugContext(ctx, "rate limited", xslog.Key(key), xslog.RequestIP(r))
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests(xerrors.WithMessage("rate limit exceeded")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
