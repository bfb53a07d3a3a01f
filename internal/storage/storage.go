package storage

import (
	"context"
	"errors"

	"github.com/garrettladley/huddle/internal/notification"
)

var ErrNotFound = errors.New("not found")

// KV is a string-keyed byte store. Get returns ErrNotFound for a missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// NotificationStore is the backend side of the notifications API.
type NotificationStore interface {
	// Add stores n for userID, assigning an ID and creation time when unset.
	Add(ctx context.Context, userID string, n notification.Notification) (notification.Notification, error)

	// List returns every notification of userID, newest first.
	List(ctx context.Context, userID string) ([]notification.Notification, error)

	// MarkRead returns ErrNotFound if userID has no notification with that ID.
	MarkRead(ctx context.Context, userID string, id string) error

	Close() error
}
