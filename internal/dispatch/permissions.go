package dispatch

import (
	"context"
	"sync"
)

type Status string

const (
	StatusUndetermined Status = "undetermined"
	StatusGranted      Status = "granted"
	StatusDenied       Status = "denied"
)

// Permissions grants local notifications when they are enabled and the
// configured sink can deliver on this host.
type Permissions struct {
	enabled bool
	sink    Sink

	mu     sync.Mutex
	status Status
}

func NewPermissions(enabled bool, sink Sink) *Permissions {
	return &Permissions{
		enabled: enabled,
		sink:    sink,
		status:  StatusUndetermined,
	}
}

func (p *Permissions) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Request returns the existing status when already granted and otherwise
// re-evaluates it.
func (p *Permissions) Request(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return StatusUndetermined, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == StatusGranted {
		return p.status, nil
	}

	switch {
	case !p.enabled, p.sink == nil, !p.sink.Available():
		p.status = StatusDenied
	default:
		p.status = StatusGranted
	}
	return p.status, nil
}
