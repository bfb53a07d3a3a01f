package notification

// Diff returns the notifications in fetched whose ID is not in seen, in their
// original order. A duplicated ID within fetched is returned once, first
// occurrence wins.
func Diff(fetched []Notification, seen []string) []Notification {
	skip := make(map[string]struct{}, len(seen)+len(fetched))
	for _, id := range seen {
		skip[id] = struct{}{}
	}

	out := make([]Notification, 0, len(fetched))
	for _, n := range fetched {
		if _, ok := skip[n.ID]; ok {
			continue
		}
		skip[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}
