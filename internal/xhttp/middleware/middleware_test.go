package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/huddle/internal/xcontext"
	"github.com/garrettladley/huddle/internal/xhttp"
	"github.com/garrettladley/huddle/internal/xslog"
)

func tag(name string, order *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mws := []func(http.Handler) http.Handler{tag("a", &order), tag("b", &order), tag("c", &order)}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mws...)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if diff := cmp.Diff([]string{"a", "b", "c", "handler"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	order = nil
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if diff := cmp.Diff([]string{"a", "b", "c", "handler"}, order); diff != "" {
		t.Errorf("second call order mismatch (-want +got):\n%s", diff)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	const incoming = "5f0c6f6e-58a4-4f40-9f55-7c2d2b1f7c11"

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "generated when missing", header: "", want: "generated"},
		{name: "reuses uuid", header: incoming, want: incoming},
		{name: "replaces malformed", header: "not-a-uuid", want: "generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var fromCtx string
			h := RequestID(WithIDFunc(func() string { return "generated" }))(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					fromCtx, _ = xcontext.GetRequestID(r.Context())
				}),
			)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(xhttp.XRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if fromCtx != tt.want {
				t.Errorf("context request id = %q, want %q", fromCtx, tt.want)
			}
			if got := rec.Header().Get(xhttp.XRequestID); got != tt.want {
				t.Errorf("response header = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(xslog.WithLogger(req.Context(), slog.New(slog.NewTextHandler(io.Discard, nil))))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if ct := rec.Header().Get(xhttp.ContentType); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]any
	if err := go_json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if _, ok := body["message"]; !ok {
		t.Errorf("body missing message: %v", body)
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	want := map[string]string{
		xhttp.XContentTypeOpts: "nosniff",
		xhttp.XFrameOpts:       "DENY",
		xhttp.ReferrerPolicy:   "no-referrer",
		xhttp.CacheControl:     "no-store",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestLogging_LevelByStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  string
	}{
		{status: http.StatusOK, level: "INFO"},
		{status: http.StatusNotFound, level: "WARN"},
		{status: http.StatusBadGateway, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			h := Chain(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(tt.status) }),
				Logger(logger),
				Logging,
			)
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

			var line map[string]any
			if err := go_json.Unmarshal([]byte(buf.String()), &line); err != nil {
				t.Fatalf("log line is not json: %v (%q)", err, buf.String())
			}
			if line["level"] != tt.level {
				t.Errorf("level = %v, want %s", line["level"], tt.level)
			}
		})
	}
}
