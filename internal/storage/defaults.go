package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/huddle/internal/notification"
)

func withDefaults(n notification.Notification) notification.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreateTime == "" {
		n.CreateTime = time.Now().UTC().Format(time.RFC3339)
	}
	return n
}
