package memory_test

import (
	"context"
	"testing"

	"github.com/driftkit/sway/pkg/adapters/memory"
	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, memory.NewStore())
}

func TestMemoryStore_IsolatesStoredState(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	snap := &domain.Snapshot{
		GroupID: "g",
		Pass:    1,
		Transitions: []domain.TransitionRecord{
			{ID: 1, Item: "a", Phase: "enter", Values: domain.Values{"opacity": 0.5}},
		},
	}
	require.NoError(t, store.Save(ctx, "g", snap))

	// Mutating the original must not leak into the store.
	snap.Transitions[0].Values["opacity"] = 99

	loaded, err := store.Load(ctx, "g")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, loaded.Transitions[0].Values["opacity"], 1e-9)

	// Mutating a loaded copy must not leak either.
	loaded.Transitions[0].Phase = "leave"
	again, err := store.Load(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, "enter", again.Transitions[0].Phase)
}
