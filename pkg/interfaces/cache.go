package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the key-value contract consumed by the site service. Keys
// are opaque strings owned by the caller; lifetime and eviction policy belong
// to the implementation. A nil value with a nil error signals a miss.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
