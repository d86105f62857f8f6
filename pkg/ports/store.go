package ports

import (
	"context"

	"github.com/driftkit/sway/pkg/domain"
)

// SnapshotStore persists the latest snapshot of a group, keyed by group ID.
// Implementations: file (local JSON), redis.
type SnapshotStore interface {
	// Save persists the snapshot, replacing any previous one for the group.
	Save(ctx context.Context, groupID string, snap *domain.Snapshot) error

	// Load retrieves the latest snapshot for the group. Returns
	// domain.ErrSnapshotNotFound when none exists.
	Load(ctx context.Context, groupID string) (*domain.Snapshot, error)

	// Delete removes the group's snapshot. Deleting a missing group is not
	// an error.
	Delete(ctx context.Context, groupID string) error

	// List returns the IDs of groups with a stored snapshot.
	List(ctx context.Context) ([]string, error)
}

// Snapshotter is anything that can report its tracked sequence as a snapshot.
// The root Group implements it; the inspection server and recorders consume it.
type Snapshotter interface {
	Snapshot() *domain.Snapshot
}
