package storage

import (
	"context"
	"testing"
)

func TestMemoryRateLimiter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := NewMemoryRateLimiter(0.001, 2)

	for i := range 2 {
		ok, err := l.Allow(ctx, "alice")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !ok {
			t.Fatalf("request %d denied within burst", i)
		}
	}

	if ok, _ := l.Allow(ctx, "alice"); ok {
		t.Error("request beyond burst allowed")
	}
	if ok, _ := l.Allow(ctx, "bob"); !ok {
		t.Error("other key denied")
	}
}
