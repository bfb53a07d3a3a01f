package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/huddle/internal/client/api"
	"github.com/garrettladley/huddle/internal/dispatch"
	"github.com/garrettladley/huddle/internal/oauth"
	"github.com/garrettladley/huddle/internal/poller"
	"github.com/garrettladley/huddle/internal/seen"
	"github.com/garrettladley/huddle/internal/server"
	"github.com/garrettladley/huddle/internal/server/handler"
	"github.com/garrettladley/huddle/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := server.NewTokenValidator(map[string]string{"alice-token": "alice", "bob-token": "bob"})
	srv := httptest.NewServer(newRouter(logger, storage.NewMemoryNotificationStore(), tokens, storage.NewMemoryRateLimiter(1000, 1000), handler.WithCrossUserCreate()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRouter_Auth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{name: "health is public", path: "/health", wantStatus: http.StatusOK},
		{name: "missing token", path: "/api/v1/notifications", wantStatus: http.StatusUnauthorized},
		{name: "bad token", path: "/api/v1/notifications", token: "nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", path: "/api/v1/notifications", token: "alice-token", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := do(t, http.MethodGet, srv.URL+tt.path, tt.token, "")
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if resp.Header.Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID header")
			}
		})
	}
}

func TestRouter_AgentRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	srv := newTestServer(t)

	for _, body := range []string{
		`{"userId":"bob","title":"Standup","body":"in 5"}`,
		`{"userId":"bob","groupId":"g1","groupName":"Team","body":"new event"}`,
		`{"userId":"alice","title":"not for bob"}`,
	} {
		resp := do(t, http.MethodPost, srv.URL+"/api/v1/notifications", "alice-token", body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink := &recordingSink{}
	store := seen.New(storage.NewMemoryKV(), logger)
	p := poller.New(
		api.New(oauth.Static("bob-token"), api.WithBaseURL(srv.URL+"/api/v1")),
		dispatch.NewDispatcher(sink, logger),
		dispatch.NewPermissions(true, sink),
		store,
		logger,
	)

	result, err := p.Tick(ctx)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if diff := cmp.Diff(poller.TickResult{Fetched: 2, New: 2, Dispatched: 2}, result); diff != "" {
		t.Errorf("Tick() mismatch (-want +got):\n%s", diff)
	}

	titles := make([]string, 0, len(sink.got))
	for _, n := range sink.got {
		titles = append(titles, n.Title)
	}
	if diff := cmp.Diff([]string{"Team", "Standup"}, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}

	result, err = p.Tick(ctx)
	if err != nil {
		t.Fatalf("second Tick() error = %v", err)
	}
	if result.New != 0 {
		t.Errorf("second Tick() New = %d, want 0", result.New)
	}
	if got := len(store.Load(ctx)); got != 2 {
		t.Errorf("seen count = %d, want 2", got)
	}
}

type recordingSink struct {
	got []dispatch.LocalNotification
}

func (*recordingSink) Method() dispatch.Method { return dispatch.MethodLog }
func (*recordingSink) Available() bool         { return true }

func (s *recordingSink) Notify(_ context.Context, n dispatch.LocalNotification) error {
	s.got = append(s.got, n)
	return nil
}
