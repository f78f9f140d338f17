package noop

import (
	"context"
	"time"
)

// Cache is a provider that stores nothing. Every read is a miss, every write
// succeeds. Useful when caching is disabled by configuration but callers
// still expect a provider.
type Cache struct{}

// NewCache returns the no-op cache provider.
func NewCache() *Cache {
	return &Cache{}
}

func (Cache) Get(_ context.Context, _ string) (any, error) { return nil, nil }

func (Cache) Set(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }

func (Cache) Delete(_ context.Context, _ string) error { return nil }

func (Cache) Clear(_ context.Context) error { return nil }
