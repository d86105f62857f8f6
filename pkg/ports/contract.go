package ports

import (
	"context"
	"testing"
	"time"

	"github.com/driftkit/sway/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract verifies that a SnapshotStore implementation
// adheres to the interface contract. Adapter tests call it against their
// concrete store.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	groupID := "contract-test-group-" + time.Now().Format("20060102150405")

	sample := func(pass int) *domain.Snapshot {
		return &domain.Snapshot{
			GroupID: groupID,
			Pass:    pass,
			TakenAt: time.Now().UTC().Truncate(time.Millisecond),
			Transitions: []domain.TransitionRecord{
				{ID: 1, Item: "a", Phase: "enter", Values: domain.Values{"opacity": 0.4}},
				{ID: 2, Item: "b", Phase: "leave", Idle: true},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, groupID, sample(1)))

		loaded, err := store.Load(ctx, groupID)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Pass)
		require.Len(t, loaded.Transitions, 2)
		assert.Equal(t, "enter", loaded.Transitions[0].Phase)
		assert.InDelta(t, 0.4, loaded.Transitions[0].Values["opacity"], 1e-9)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, groupID, sample(1)))
		require.NoError(t, store.Save(ctx, groupID, sample(7)))

		loaded, err := store.Load(ctx, groupID)
		require.NoError(t, err)
		assert.Equal(t, 7, loaded.Pass)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+groupID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, groupID, sample(1)))
		require.NoError(t, store.Delete(ctx, groupID))

		_, err := store.Load(ctx, groupID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

		// Deleting again must not fail.
		assert.NoError(t, store.Delete(ctx, groupID))
	})

	t.Run("List", func(t *testing.T) {
		id1 := groupID + "-1"
		id2 := groupID + "-2"
		require.NoError(t, store.Save(ctx, id1, sample(1)))
		require.NoError(t, store.Save(ctx, id2, sample(2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		groups, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, groups, id1)
		assert.Contains(t, groups, id2)
	})
}
