// Package record persists animation snapshots through a ports.SnapshotStore,
// serializing access per group so concurrent writers cannot interleave.
package record

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/driftkit/sway/internal/logging"
	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Recorder orchestrates snapshot access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Recorder struct {
	store ports.SnapshotStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional, for stores shared across processes
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithLocker enables distributed locking with the given TTL.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(r *Recorder) {
		r.locker = locker
		r.lockTTL = ttl
	}
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// New creates a Recorder backed by the given store.
func New(store ports.SnapshotStore, opts ...Option) *Recorder {
	r := &Recorder{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(groupID) after
// unlocking.
func (r *Recorder) acquire(groupID string) *lockEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[groupID]
	if !exists {
		entry = &lockEntry{}
		r.locks[groupID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (r *Recorder) release(groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[groupID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(r.locks, groupID)
	}
}

// WithLock executes fn while holding the lock for the group.
func (r *Recorder) WithLock(ctx context.Context, groupID string, fn func(context.Context) error) error {
	entry := r.acquire(groupID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		r.release(groupID)
	}()

	if r.locker != nil {
		unlock, err := r.locker.Lock(ctx, groupID, r.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				r.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"group_id", groupID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Save persists the snapshot for its group.
func (r *Recorder) Save(ctx context.Context, groupID string, snap *domain.Snapshot) error {
	return r.WithLock(ctx, groupID, func(ctx context.Context) error {
		return r.store.Save(ctx, groupID, snap)
	})
}

// Load retrieves the latest snapshot for the group.
func (r *Recorder) Load(ctx context.Context, groupID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := r.WithLock(ctx, groupID, func(ctx context.Context) error {
		var err error
		snap, err = r.store.Load(ctx, groupID)
		return err
	})
	return snap, err
}

// Delete removes the group's snapshot.
func (r *Recorder) Delete(ctx context.Context, groupID string) error {
	return r.WithLock(ctx, groupID, func(ctx context.Context) error {
		return r.store.Delete(ctx, groupID)
	})
}

// List delegates to the store.
func (r *Recorder) List(ctx context.Context) ([]string, error) {
	return r.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (r *Recorder) Store() ports.SnapshotStore {
	return r.store
}

// Sink returns a function suitable for a group's recorder hook. Save errors
// are logged, not surfaced, since the hook runs inside the animation pass.
func (r *Recorder) Sink(groupID string) func(*domain.Snapshot) {
	return func(snap *domain.Snapshot) {
		if snap == nil {
			return
		}
		if err := r.Save(context.Background(), groupID, snap); err != nil {
			r.logger.Error("failed to record snapshot",
				"group_id", groupID,
				"pass", snap.Pass,
				"err", err,
			)
		}
	}
}
