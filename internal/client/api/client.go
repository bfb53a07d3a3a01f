// Package api talks to the scheduling backend's notifications endpoint.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/garrettladley/huddle/internal/notification"
	"github.com/garrettladley/huddle/internal/xhttp"
	"github.com/garrettladley/huddle/internal/xslog"
)

const (
	DefaultBaseURL = "http://localhost:5000/api/v1"
	DefaultTimeout = 30 * time.Second

	notificationsPath = "/notifications"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(tokenSource oauth2.TokenSource, opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
		base:    xhttp.NewTransport(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := &bearerTransport{
		base:        cfg.base,
		tokenSource: tokenSource,
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.baseURL, "/"),
		httpClient: xhttp.NewHTTPClient(
			xhttp.WithTransport(transport),
			xhttp.WithTimeout(cfg.timeout),
		),
		logger: cfg.logger,
	}
}

type clientConfig struct {
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
	base    http.RoundTripper
}

type Option func(*clientConfig)

func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

// WithTransport replaces the base round tripper the bearer token is added on top of.
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *clientConfig) { cfg.base = rt }
}

// Fetch returns the full notification list of the authenticated user.
// Every failure is returned as a *FetchError; Fetch never retries.
func (c *Client) Fetch(ctx context.Context) ([]notification.Notification, error) {
	notifications, err := c.fetch(ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	return notifications, nil
}

func (c *Client) fetch(ctx context.Context) ([]notification.Notification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+notificationsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	xhttp.SetRequestHeaderAcceptJSON(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp)
	}

	var result []notification.Notification
	if err := go_json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result == nil {
		result = []notification.Notification{}
	}

	c.logger.DebugContext(ctx, "fetched notifications", xslog.Count(len(result)))
	return result, nil
}

type bearerTransport struct {
	base        http.RoundTripper
	tokenSource oauth2.TokenSource
}

var _ http.RoundTripper = (*bearerTransport)(nil)

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}

	// RoundTrippers must not modify the caller's request
	req = req.Clone(req.Context())
	xhttp.SetRequestHeaderBearer(req, token.AccessToken)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}
