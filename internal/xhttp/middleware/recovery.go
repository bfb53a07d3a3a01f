package middleware

import (
	"net/http"

	"github.com/garrettladley/huddle/internal/xerrors"
	"github.com/garrettladley/huddle/internal/xslog"
)

// Recovery turns a handler panic into a JSON 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				ctx := r.Context()
				xslog.FromContext(ctx).ErrorContext(
					ctx,
					"panic recovered",
					xslog.RequestGroup(r),
					xslog.ErrorGroupWithStack(err),
				)
				xerrors.WriteError(ctx, w, xerrors.Internal())
			}
		}()
		next.ServeHTTP(w, r)
	})
}
