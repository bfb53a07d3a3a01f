// Package seen persists the bounded list of notification IDs that were
// already surfaced as local alerts.
package seen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/xslog"
)

const (
	Key = "seen_notification_ids"

	DefaultCapacity = 1000
)

var (
	ErrRead  = errors.New("seen-set read failed")
	ErrWrite = errors.New("seen-set write failed")
)

// Store reads and writes the seen-set. Reads fail open and writes are best
// effort: neither ever blocks a poll tick.
type Store struct {
	kv       storage.KV
	capacity int
	logger   *slog.Logger
}

type Option func(*Store)

func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func New(kv storage.KV, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		capacity: DefaultCapacity,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted IDs, or an empty list when nothing is stored or
// the stored value cannot be read.
func (s *Store) Load(ctx context.Context) []string {
	ids, err := s.load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load seen notification ids", xslog.Key(Key), xslog.Error(err))
		return []string{}
	}
	return ids
}

func (s *Store) load(ctx context.Context) ([]string, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	var ids []string
	if err := go_json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: decoding: %w", ErrRead, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Save persists the last capacity entries of ids. Failures are logged.
func (s *Store) Save(ctx context.Context, ids []string) {
	if err := s.save(ctx, ids); err != nil {
		s.logger.ErrorContext(ctx, "failed to save seen notification ids",
			xslog.Key(Key),
			xslog.Error(err),
			xslog.Count(len(ids)),
		)
	}
}

func (s *Store) save(ctx context.Context, ids []string) error {
	data, err := go_json.Marshal(Trim(ids, s.capacity))
	if err != nil {
		return fmt.Errorf("%w: encoding: %w", ErrWrite, err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Clear removes the persisted list.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		err = fmt.Errorf("%w: clearing: %w", ErrWrite, err)
		s.logger.ErrorContext(ctx, "failed to clear seen notification ids", xslog.Key(Key), xslog.Error(err))
		return err
	}
	s.logger.InfoContext(ctx, "cleared seen notification ids")
	return nil
}

// Trim drops entries from the front of ids until at most capacity remain.
func Trim(ids []string, capacity int) []string {
	if capacity <= 0 || len(ids) <= capacity {
		return ids
	}
	return ids[len(ids)-capacity:]
}
