package xhttp

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/huddle/internal/version"
)

type huddleTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*huddleTransport)(nil)

// RoundTrip tags the request with the client version and a fresh request ID
// unless the caller already set one.
func (t *huddleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(UserAgent, "huddle/"+version.Get())
	req.Header.Set(version.Header, version.Get())
	if req.Header.Get(XRequestID) == "" {
		req.Header.Set(XRequestID, uuid.NewString())
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper with standard huddle headers.
func NewTransport() http.RoundTripper {
	return &huddleTransport{base: http.DefaultTransport}
}
