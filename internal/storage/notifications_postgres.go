package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/huddle/internal/notification"
)

var _ NotificationStore = (*PostgresNotificationStore)(nil)

type PostgresNotificationStore struct {
	pool *pgxpool.Pool
}

func NewPostgresNotificationStore(pool *pgxpool.Pool) *PostgresNotificationStore {
	return &PostgresNotificationStore{pool: pool}
}

func (s *PostgresNotificationStore) Add(ctx context.Context, userID string, n notification.Notification) (notification.Notification, error) {
	n = withDefaults(n)

	createdAt, err := time.Parse(time.RFC3339, n.CreateTime)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("invalid create time %q: %w", n.CreateTime, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, title, body, group_id, group_name, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, userID, n.Title, n.Body, n.GroupID, n.GroupName, n.IsRead, createdAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("insert notification: %w", err)
	}

	return n, nil
}

func (s *PostgresNotificationStore) List(ctx context.Context, userID string) ([]notification.Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, body, group_id, group_name, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (notification.Notification, error) {
		var (
			n         notification.Notification
			createdAt time.Time
		)
		if err := row.Scan(&n.ID, &n.Title, &n.Body, &n.GroupID, &n.GroupName, &n.IsRead, &createdAt); err != nil {
			return notification.Notification{}, err
		}
		n.CreateTime = createdAt.UTC().Format(time.RFC3339)
		return n, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan notifications: %w", err)
	}

	return notifications, nil
}

func (s *PostgresNotificationStore) MarkRead(ctx context.Context, userID string, id string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresNotificationStore) Close() error {
	s.pool.Close()
	return nil
}
