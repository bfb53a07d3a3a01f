package xhttp

import (
	"net/http"
	"strings"
)

const (
	XForwardedFor    = "X-Forwarded-For"
	XContentTypeOpts = "X-Content-Type-Options"
	XFrameOpts       = "X-Frame-Options"
	ReferrerPolicy   = "Referrer-Policy"
	CacheControl     = "Cache-Control"
)

const (
	ContentType   = "Content-Type"
	Accept        = "Accept"
	Authorization = "Authorization"
	UserAgent     = "User-Agent"
	XRequestID    = "X-Request-ID"
)

const (
	applicationJSON = "application/json"
	bearerPrefix    = "Bearer "
)

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func GetRequestHeaderRequestID(r *http.Request) string {
	return r.Header.Get(XRequestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	w.Header().Set(ContentType, applicationJSON)
}

func SetRequestHeaderAcceptJSON(r *http.Request) {
	r.Header.Set(Accept, applicationJSON)
}

func SetRequestHeaderContentTypeJSON(r *http.Request) {
	r.Header.Set(ContentType, applicationJSON)
}

func SetRequestHeaderBearer(r *http.Request, token string) {
	r.Header.Set(Authorization, bearerPrefix+token)
}

// GetRequestBearerToken returns the token of a "Bearer" Authorization header,
// or "" when the header is missing or uses another scheme.
func GetRequestBearerToken(r *http.Request) string {
	h := r.Header.Get(Authorization)
	if len(h) <= len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(bearerPrefix):])
}
