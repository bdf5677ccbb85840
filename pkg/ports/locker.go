package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker defines the interface for distributed concurrency
// control. The session manager uses it to serialize turns for the same
// conversation across multiple bot replicas.
type DistributedLocker interface {
	// Lock attempts to acquire a distributed lock for the given key (the
	// conversation ID). It blocks until the lock is acquired or the context
	// is canceled. Returns an UnlockFunc that MUST be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
