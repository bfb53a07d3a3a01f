// Package notification holds the backend notification record and the
// deduplication of fetched records against the seen-set.
package notification

// Notification is a server-originated record surfaced to the user.
// Field names follow the backend's JSON.
type Notification struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	IsRead     bool   `json:"isRead"`
	GroupID    string `json:"groupId,omitempty"`
	GroupName  string `json:"groupName,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
}

// IDs returns the IDs of ns in order.
func IDs(ns []Notification) []string {
	ids := make([]string, 0, len(ns))
	for _, n := range ns {
		ids = append(ids, n.ID)
	}
	return ids
}
