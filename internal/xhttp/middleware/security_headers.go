package middleware

import (
	"net/http"

	"github.com/garrettladley/huddle/internal/xhttp"
)

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(xhttp.XContentTypeOpts, "nosniff")
		h.Set(xhttp.XFrameOpts, "DENY")
		h.Set(xhttp.ReferrerPolicy, "no-referrer")
		// notification payloads are per-user
		h.Set(xhttp.CacheControl, "no-store")
		next.ServeHTTP(w, r)
	})
}
