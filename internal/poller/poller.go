// Package poller drives fetch, dedup, dispatch and seen-set updates on a
// fixed cadence.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/huddle/internal/dispatch"
	"github.com/garrettladley/huddle/internal/notification"
	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/xslog"
)

const DefaultInterval = 30 * time.Second

const testGroupName = "TEST-GROUP"

var ErrPermissionDenied = errors.New("notification permission denied")

type Fetcher interface {
	Fetch(ctx context.Context) ([]notification.Notification, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, n notification.Notification) error
}

type PermissionRequester interface {
	Request(ctx context.Context) (dispatch.Status, error)
}

type SeenStore interface {
	Load(ctx context.Context) []string
	Save(ctx context.Context, ids []string)
}

type TickResult struct {
	Fetched    int
	New        int
	Dispatched int
	Failed     int
}

type Stats struct {
	SeenCount int  `json:"seenCount"`
	Polling   bool `json:"polling"`
}

// Poller is Stopped until Start succeeds. Ticks run on a single goroutine so
// they never overlap; ticks that would fire while one is still running are
// dropped.
type Poller struct {
	fetcher     Fetcher
	dispatcher  Dispatcher
	permissions PermissionRequester
	seen        SeenStore
	interval    time.Duration
	logger      *slog.Logger
	state       storage.KV
	now         func() time.Time

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithStateStore records the polling state in kv so other processes sharing
// it can report whether polling is active.
func WithStateStore(kv storage.KV) Option {
	return func(p *Poller) { p.state = kv }
}

func New(
	fetcher Fetcher,
	dispatcher Dispatcher,
	permissions PermissionRequester,
	seen SeenStore,
	logger *slog.Logger,
	opts ...Option,
) *Poller {
	p := &Poller{
		fetcher:     fetcher,
		dispatcher:  dispatcher,
		permissions: permissions,
		seen:        seen,
		interval:    DefaultInterval,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) Interval() time.Duration { return p.interval }

// Start requests notification permission and, when granted, begins ticking
// every interval until Stop is called or ctx is done. Calling Start while
// running does nothing.
func (p *Poller) Start(ctx context.Context) error {
	if p.Running() {
		return nil
	}

	status, err := p.permissions.Request(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "notification permission request failed", xslog.Error(err))
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	if status != dispatch.StatusGranted {
		p.logger.WarnContext(ctx, "notification permission not granted", slog.String("status", string(status)))
		return ErrPermissionDenied
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// another Start may have won while permission was pending
	if p.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	p.stop, p.done = stop, done

	p.recordState(ctx, true)
	go p.loop(ctx, stop, done)

	p.logger.InfoContext(ctx, "started polling", xslog.Interval(p.interval))
	return nil
}

// Stop halts the ticker and waits for the loop to exit. A tick that is
// already running completes. Calling Stop while stopped does nothing.
func (p *Poller) Stop() {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()

	if stop == nil {
		return
	}

	close(stop)
	<-done

	p.mu.Lock()
	if p.stop == nil {
		p.recordState(context.Background(), false)
	}
	p.mu.Unlock()

	p.logger.Info("stopped polling")
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

func (p *Poller) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			p.release(ctx, done)
			return
		case <-ticker.C:
			// Stop may have raced with the ticker
			select {
			case <-stop:
				return
			default:
			}
			_, _ = p.Tick(ctx)
			if ctx.Err() == nil {
				p.recordState(ctx, true)
			}
		}
	}
}

// release marks the poller stopped when its loop exits on its own.
func (p *Poller) release(ctx context.Context, done chan<- struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == done {
		p.stop, p.done = nil, nil
		p.recordState(context.WithoutCancel(ctx), false)
		p.logger.Info("polling context done")
	}
}

// Tick runs one poll cycle. A fetch failure leaves the seen-set untouched.
// Dispatch failures are logged and counted; the failed ID is still marked
// seen.
func (p *Poller) Tick(ctx context.Context) (TickResult, error) {
	start := p.now()

	fetched, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to fetch notifications", xslog.ErrorGroup(err))
		return TickResult{}, err
	}

	seen := p.seen.Load(ctx)
	fresh := notification.Diff(fetched, seen)

	result := TickResult{
		Fetched: len(fetched),
		New:     len(fresh),
	}
	if len(fresh) == 0 {
		return result, nil
	}

	for _, n := range fresh {
		if err := p.dispatcher.Dispatch(ctx, n); err != nil {
			result.Failed++
			p.logger.ErrorContext(ctx, "failed to dispatch notification",
				xslog.NotificationID(n.ID),
				xslog.GroupID(n.GroupID),
				xslog.Error(err),
			)
			continue
		}
		result.Dispatched++
	}

	p.seen.Save(ctx, slices.Concat(seen, notification.IDs(fresh)))

	p.logger.InfoContext(ctx, "dispatched new notifications",
		xslog.Fetched(result.Fetched),
		xslog.Count(result.Dispatched),
		xslog.Failed(result.Failed),
		xslog.Duration(p.now().Sub(start)),
	)
	return result, nil
}

// Stats reports the seen-set size and whether this poller, or another
// process sharing its state store, is polling.
func (p *Poller) Stats(ctx context.Context) Stats {
	return Stats{
		SeenCount: len(p.seen.Load(ctx)),
		Polling:   p.Running() || p.polledElsewhere(ctx),
	}
}

// SendTest dispatches a synthetic notification without recording it as seen.
func (p *Poller) SendTest(ctx context.Context) error {
	n := notification.Notification{
		ID:         "test-" + uuid.NewString(),
		Title:      "Test Notification",
		Body:       "This is a test notification from huddle",
		GroupName:  testGroupName,
		CreateTime: time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.dispatcher.Dispatch(ctx, n); err != nil {
		return fmt.Errorf("failed to send test notification: %w", err)
	}
	return nil
}
