package application

import (
	"context"
	"time"
)

// Cache is the key-value store used for lookup acceleration. Entries are a
// derived, disposable view of the persistent store and are never the source
// of truth.
type Cache interface {
	// Get returns the raw entry and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
