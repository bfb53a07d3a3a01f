package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/garrettladley/huddle/internal/notification"
	"github.com/garrettladley/huddle/internal/xslog"
)

type DispatchError struct {
	NotificationID string
	Method         Method
	Err            error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch notification %s via %s: %v", e.NotificationID, e.Method, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
}

func NewDispatcher(sink Sink, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sink:   sink,
		logger: logger,
	}
}

func (d *Dispatcher) Method() Method { return d.sink.Method() }

// Dispatch presents n immediately. Failures are reported as *DispatchError.
func (d *Dispatcher) Dispatch(ctx context.Context, n notification.Notification) error {
	content := Content(n)
	if err := d.sink.Notify(ctx, content); err != nil {
		return &DispatchError{
			NotificationID: n.ID,
			Method:         d.sink.Method(),
			Err:            err,
		}
	}

	d.logger.DebugContext(ctx, "dispatched notification",
		xslog.NotificationID(n.ID),
		xslog.Title(content.Title),
		xslog.Method(string(d.sink.Method())),
	)
	return nil
}
