package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker provides cross-process concurrency control for recorders
// that share a snapshot store.
type DistributedLocker interface {
	// Lock acquires the lock for the given key, blocking until it is held
	// or the context is cancelled. The TTL bounds how long a crashed holder
	// can keep the lock.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
