package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	go_json "github.com/goccy/go-json"
)

type Method string

const (
	MethodAuto       Method = "auto"
	MethodNotifySend Method = "notify-send"
	MethodDunstify   Method = "dunstify"
	MethodOSAScript  Method = "osascript"
	MethodBell       Method = "bell"
	MethodLog        Method = "log"
)

var (
	ErrUnknownMethod = errors.New("unknown notification method")
	ErrNoSink        = errors.New("no notification sink available")
)

func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodAuto, MethodNotifySend, MethodDunstify, MethodOSAScript, MethodBell, MethodLog:
		return m, nil
	case "":
		return MethodAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Sink presents a LocalNotification on this host.
type Sink interface {
	Method() Method
	Available() bool
	Notify(ctx context.Context, n LocalNotification) error
}

// NewSink builds the sink for method. bell and log write to w.
func NewSink(method Method, w io.Writer) (Sink, error) {
	switch method {
	case MethodAuto:
		return newAutoSink(w), nil
	case MethodNotifySend:
		return notifySendSink{lookPath: exec.LookPath}, nil
	case MethodDunstify:
		return dunstifySink{lookPath: exec.LookPath}, nil
	case MethodOSAScript:
		return osascriptSink{lookPath: exec.LookPath}, nil
	case MethodBell:
		return &bellSink{w: w}, nil
	case MethodLog:
		return &logSink{w: w}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

type notifySendSink struct {
	lookPath func(string) (string, error)
}

func (notifySendSink) Method() Method { return MethodNotifySend }

func (s notifySendSink) Available() bool {
	_, err := s.lookPath("notify-send")
	return err == nil
}

func (s notifySendSink) Notify(ctx context.Context, n LocalNotification) error {
	if _, err := s.lookPath("notify-send"); err != nil {
		return err
	}
	return exec.CommandContext(ctx, "notify-send", notifySendArgs(n)...).Run()
}

func notifySendArgs(n LocalNotification) []string {
	args := []string{"--app-name=huddle"}
	if n.Sound {
		args = append(args, "--hint=string:sound-name:message-new-instant")
	}
	return append(args, n.Title, n.Body)
}

type dunstifySink struct {
	lookPath func(string) (string, error)
}

func (dunstifySink) Method() Method { return MethodDunstify }

func (s dunstifySink) Available() bool {
	_, err := s.lookPath("dunstify")
	return err == nil
}

func (s dunstifySink) Notify(ctx context.Context, n LocalNotification) error {
	if _, err := s.lookPath("dunstify"); err != nil {
		return err
	}
	return exec.CommandContext(ctx, "dunstify", "--appname=huddle", n.Title, n.Body).Run()
}

type osascriptSink struct {
	lookPath func(string) (string, error)
}

func (osascriptSink) Method() Method { return MethodOSAScript }

func (s osascriptSink) Available() bool {
	_, err := s.lookPath("osascript")
	return err == nil
}

func (s osascriptSink) Notify(ctx context.Context, n LocalNotification) error {
	if _, err := s.lookPath("osascript"); err != nil {
		return err
	}
	return exec.CommandContext(ctx, "osascript", "-e", appleScript(n)).Run()
}

func appleScript(n LocalNotification) string {
	script := fmt.Sprintf("display notification %s with title %s", appleScriptQuote(n.Body), appleScriptQuote(n.Title))
	if n.Sound {
		script += ` sound name "default"`
	}
	return script
}

func appleScriptQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

type bellSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (*bellSink) Method() Method { return MethodBell }

func (s *bellSink) Available() bool { return s.w != nil }

func (s *bellSink) Notify(_ context.Context, _ LocalNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprint(s.w, "\a")
	return err
}

// logSink writes one JSON line per notification, including its tap route.
type logSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (*logSink) Method() Method { return MethodLog }

func (s *logSink) Available() bool { return s.w != nil }

func (s *logSink) Notify(_ context.Context, n LocalNotification) error {
	line := struct {
		LocalNotification
		Route string `json:"route"`
	}{
		LocalNotification: n,
		Route:             Route(n.Data),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := go_json.NewEncoder(s.w).Encode(line); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}

// autoSink uses the first sink that delivers, in preference order.
type autoSink struct {
	sinks []Sink
}

func newAutoSink(w io.Writer) *autoSink {
	return &autoSink{
		sinks: []Sink{
			notifySendSink{lookPath: exec.LookPath},
			dunstifySink{lookPath: exec.LookPath},
			osascriptSink{lookPath: exec.LookPath},
			&bellSink{w: w},
		},
	}
}

func (*autoSink) Method() Method { return MethodAuto }

func (s *autoSink) Available() bool {
	for _, sink := range s.sinks {
		if sink.Available() {
			return true
		}
	}
	return false
}

func (s *autoSink) Notify(ctx context.Context, n LocalNotification) error {
	var errs error
	for _, sink := range s.sinks {
		if !sink.Available() {
			continue
		}
		err := sink.Notify(ctx, n)
		if err == nil {
			return nil
		}
		errs = errors.Join(errs, fmt.Errorf("%s: %w", sink.Method(), err))
	}
	if errs == nil {
		return ErrNoSink
	}
	return errs
}
