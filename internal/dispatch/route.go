package dispatch

import "net/url"

const (
	notificationsRoute = "/notifications"
	groupEventsRoute   = "/group/events/"
)

// Route is the in-app destination for a tapped notification.
func Route(data map[string]string) string {
	if groupID := data[DataGroupID]; groupID != "" {
		return groupEventsRoute + url.PathEscape(groupID)
	}
	return notificationsRoute
}
