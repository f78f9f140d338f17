package noop

import (
	"context"
	"testing"
	"time"
)

func TestCacheDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()

	if err := cache.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != nil {
		t.Fatalf("expected miss, got %v", value)
	}
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
}
