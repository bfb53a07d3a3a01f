package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/garrettladley/huddle/internal/server"
	"github.com/garrettladley/huddle/internal/xcontext"
	"github.com/garrettladley/huddle/internal/xerrors"
	"github.com/garrettladley/huddle/internal/xhttp"
	"github.com/garrettladley/huddle/internal/xslog"
)

type TokenValidator interface {
	ValidateAndGetUserID(ctx context.Context, token string) (string, error)
}

var _ TokenValidator = (*server.TokenValidator)(nil)

// BearerAuth validates bearer tokens and sets the user ID in context.
func BearerAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, err := validator.ValidateAndGetUserID(ctx, xhttp.GetRequestBearerToken(r))
			if err != nil {
				switch {
				case errors.Is(err, server.ErrMissingToken):
					xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("missing Authorization header")))
				case errors.Is(err, server.ErrInvalidToken):
					xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("invalid or expired token")))
				default:
					xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("token validation failed"), xerrors.WithCause(err)))
				}
				return
			}

			ctx = xcontext.SetUserID(ctx, userID)
			ctx = xslog.WithAttrs(ctx, xslog.UserGroup(userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
