package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/garrettladley/huddle/internal/notification"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{method: MethodLog, available: true}
	d := NewDispatcher(sink, discardLogger())

	n := notification.Notification{ID: "1", Title: "Hello", Body: "world"}
	if err := d.Dispatch(context.Background(), n); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(sink.got) != 1 {
		t.Fatalf("sink calls = %d, want 1", len(sink.got))
	}
	if sink.got[0].Title != "Hello" || sink.got[0].Data[DataNotificationID] != "1" {
		t.Errorf("sink got %+v", sink.got[0])
	}
}

func TestDispatcher_DispatchError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	d := NewDispatcher(&fakeSink{method: MethodBell, available: true, err: boom}, discardLogger())

	err := d.Dispatch(context.Background(), notification.Notification{ID: "42"})

	var dispatchErr *DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("Dispatch() error = %v, want *DispatchError", err)
	}
	if dispatchErr.NotificationID != "42" || dispatchErr.Method != MethodBell {
		t.Errorf("DispatchError = %+v", dispatchErr)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Dispatch() error does not wrap %v", boom)
	}
}

func TestPermissions_Request(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled bool
		sink    Sink
		want    Status
	}{
		{name: "granted", enabled: true, sink: &fakeSink{available: true}, want: StatusGranted},
		{name: "disabled", enabled: false, sink: &fakeSink{available: true}, want: StatusDenied},
		{name: "no sink on host", enabled: true, sink: &fakeSink{available: false}, want: StatusDenied},
		{name: "nil sink", enabled: true, sink: nil, want: StatusDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPermissions(tt.enabled, tt.sink)
			if p.Status() != StatusUndetermined {
				t.Errorf("initial Status() = %q, want %q", p.Status(), StatusUndetermined)
			}
			got, err := p.Request(context.Background())
			if err != nil {
				t.Fatalf("Request() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Request() = %q, want %q", got, tt.want)
			}
			if p.Status() != tt.want {
				t.Errorf("Status() = %q, want %q", p.Status(), tt.want)
			}
		})
	}
}

func TestPermissions_RequestAfterSinkAppears(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{available: false}
	p := NewPermissions(true, sink)

	if got, _ := p.Request(context.Background()); got != StatusDenied {
		t.Fatalf("Request() = %q, want %q", got, StatusDenied)
	}
	sink.available = true
	if got, _ := p.Request(context.Background()); got != StatusGranted {
		t.Fatalf("Request() = %q, want %q", got, StatusGranted)
	}
}

func TestPermissions_RequestCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPermissions(true, &fakeSink{available: true}).Request(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Request() error = %v, want %v", err, context.Canceled)
	}
}
