package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long serialized snapshots and list responses stay cached.
const DefaultTTL = time.Hour

// Store is the key/value capability the pipeline depends on. Values are
// serialized JSON blobs. Implementations must be safe for concurrent use;
// two writers racing on the same key is fine (last write wins, both carry
// equivalent data).
type Store interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PrefixDeleter is implemented by backends that can drop every key under a
// prefix. Invalidation degrades to a warning when the backend cannot.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) error
}
