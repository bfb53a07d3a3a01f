package dispatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/huddle/internal/notification"
)

func TestContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		n         notification.Notification
		wantTitle string
		wantBody  string
	}{
		{
			name:      "group name wins",
			n:         notification.Notification{ID: "1", Title: "Meeting", GroupName: "Team", Body: "at 5"},
			wantTitle: "Team",
			wantBody:  "at 5",
		},
		{
			name:      "falls back to title",
			n:         notification.Notification{ID: "1", Title: "Meeting", Body: "at 5"},
			wantTitle: "Meeting",
			wantBody:  "at 5",
		},
		{
			name:      "defaults",
			n:         notification.Notification{ID: "1"},
			wantTitle: DefaultTitle,
			wantBody:  DefaultBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Content(tt.n)
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", got.Body, tt.wantBody)
			}
			if !got.Sound {
				t.Error("Sound = false, want true")
			}
		})
	}
}

func TestContent_Data(t *testing.T) {
	t.Parallel()

	n := notification.Notification{
		ID:         "n1",
		Title:      "ignored",
		Body:       "",
		GroupID:    "g1",
		GroupName:  "Team",
		CreateTime: "2024-01-01T00:00:00Z",
	}

	want := map[string]string{
		DataNotificationID: "n1",
		DataGroupID:        "g1",
		DataGroupName:      "Team",
		DataBody:           "",
		DataCreateTime:     "2024-01-01T00:00:00Z",
	}
	if diff := cmp.Diff(want, Content(n).Data); diff != "" {
		t.Errorf("Data mismatch (-want +got):\n%s", diff)
	}
}

func TestRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data map[string]string
		want string
	}{
		{name: "group", data: map[string]string{DataGroupID: "g1"}, want: "/group/events/g1"},
		{name: "escaped group", data: map[string]string{DataGroupID: "a/b"}, want: "/group/events/a%2Fb"},
		{name: "empty group", data: map[string]string{DataGroupID: ""}, want: "/notifications"},
		{name: "nil", data: nil, want: "/notifications"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Route(tt.data); got != tt.want {
				t.Errorf("Route() = %q, want %q", got, tt.want)
			}
		})
	}
}
