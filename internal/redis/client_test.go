package redis

import (
	"context"
	"testing"
)

func TestNew_InvalidURL(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), Config{URL: "not-a-redis-url"}); err == nil {
		t.Fatal("New() error = nil, want parse failure")
	}
}
