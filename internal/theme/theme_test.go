package theme

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRows(t *testing.T) {
	t.Parallel()

	th := New()
	out := th.Rows("huddle", th.Row("seen", 3), th.Row("polling", th.OK("yes")))

	for _, want := range []string{"huddle", "seen", "3", "polling", "yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if h := lipgloss.Height(out); h < 3 {
		t.Errorf("height = %d, want at least 3", h)
	}
}
