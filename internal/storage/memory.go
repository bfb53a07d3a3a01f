package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/garrettladley/huddle/internal/notification"
)

var _ KV = (*MemoryKV)(nil)

type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.data[key] = slices.Clone(value)
	m.mu.Unlock()
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}

var _ NotificationStore = (*MemoryNotificationStore)(nil)

type MemoryNotificationStore struct {
	mu     sync.RWMutex
	byUser map[string][]notification.Notification
}

func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{byUser: make(map[string][]notification.Notification)}
}

func (m *MemoryNotificationStore) Add(_ context.Context, userID string, n notification.Notification) (notification.Notification, error) {
	n = withDefaults(n)

	m.mu.Lock()
	m.byUser[userID] = append(m.byUser[userID], n)
	m.mu.Unlock()

	return n, nil
}

func (m *MemoryNotificationStore) List(_ context.Context, userID string) ([]notification.Notification, error) {
	m.mu.RLock()
	stored := m.byUser[userID]
	out := make([]notification.Notification, len(stored))
	for i, n := range stored {
		out[len(stored)-1-i] = n
	}
	m.mu.RUnlock()
	return out, nil
}

func (m *MemoryNotificationStore) MarkRead(_ context.Context, userID string, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.byUser[userID] {
		if m.byUser[userID][i].ID == id {
			m.byUser[userID][i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryNotificationStore) Close() error {
	return nil
}
