package poller

import (
	"context"
	"errors"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/xslog"
)

const StateKey = "poller_state"

// staleAfter is how many intervals may pass without a heartbeat before a
// recorded polling state is treated as left over from a dead process.
const staleAfter = 3

type state struct {
	Polling   bool          `json:"polling"`
	Interval  time.Duration `json:"interval"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (s state) live(now time.Time) bool {
	return s.Polling && now.Sub(s.UpdatedAt) <= staleAfter*s.Interval
}

func (p *Poller) recordState(ctx context.Context, polling bool) {
	if p.state == nil {
		return
	}

	data, err := go_json.Marshal(state{
		Polling:   polling,
		Interval:  p.interval,
		UpdatedAt: p.now().UTC(),
	})
	if err == nil {
		err = p.state.Set(ctx, StateKey, data)
	}
	if err != nil {
		p.logger.WarnContext(ctx, "failed to record polling state", xslog.Key(StateKey), xslog.Error(err))
	}
}

func (p *Poller) polledElsewhere(ctx context.Context) bool {
	if p.state == nil {
		return false
	}

	data, err := p.state.Get(ctx, StateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		p.logger.WarnContext(ctx, "failed to read polling state", xslog.Key(StateKey), xslog.Error(err))
		return false
	}

	var s state
	if err := go_json.Unmarshal(data, &s); err != nil {
		p.logger.WarnContext(ctx, "failed to decode polling state", xslog.Key(StateKey), xslog.Error(err))
		return false
	}
	return s.live(p.now())
}
