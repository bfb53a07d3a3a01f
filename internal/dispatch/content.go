// Package dispatch turns backend notifications into local desktop alerts.
package dispatch

import (
	"github.com/garrettladley/huddle/internal/notification"
)

const (
	DefaultTitle = "New Notification"
	DefaultBody  = "You have a new notification"
)

// Data payload keys attached to every local notification.
const (
	DataNotificationID = "notificationId"
	DataGroupID        = "groupId"
	DataGroupName      = "groupName"
	DataBody           = "body"
	DataCreateTime     = "createTime"
)

// LocalNotification is what a Sink presents. Delivery is immediate.
type LocalNotification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
	Sound bool              `json:"sound"`
}

func Content(n notification.Notification) LocalNotification {
	title := n.GroupName
	if title == "" {
		title = n.Title
	}
	if title == "" {
		title = DefaultTitle
	}

	body := n.Body
	if body == "" {
		body = DefaultBody
	}

	return LocalNotification{
		Title: title,
		Body:  body,
		Data: map[string]string{
			DataNotificationID: n.ID,
			DataGroupID:        n.GroupID,
			DataGroupName:      n.GroupName,
			DataBody:           n.Body,
			DataCreateTime:     n.CreateTime,
		},
		Sound: true,
	}
}
