// Package memory implements ports.SnapshotStore in process memory. Useful
// for tests and single-process demos.
package memory

import (
	"context"
	"sync"

	"github.com/driftkit/sway/pkg/domain"
)

// Store keeps the latest snapshot per group. Safe for concurrent use.
type Store struct {
	data map[string]*domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Snapshot),
	}
}

// Save persists a copy of the snapshot so the caller cannot mutate stored
// state through the original pointer.
func (s *Store) Save(ctx context.Context, groupID string, snap *domain.Snapshot) error {
	copied := cloneSnapshot(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[groupID] = copied
	return nil
}

// Load retrieves a copy of the latest snapshot for the group.
func (s *Store) Load(ctx context.Context, groupID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[groupID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return cloneSnapshot(snap), nil
}

// Delete removes the group's snapshot.
func (s *Store) Delete(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, groupID)
	return nil
}

// List returns the IDs of groups with a stored snapshot.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func cloneSnapshot(snap *domain.Snapshot) *domain.Snapshot {
	out := *snap
	out.Transitions = make([]domain.TransitionRecord, len(snap.Transitions))
	for i, tr := range snap.Transitions {
		tr.Values = tr.Values.Clone()
		if tr.ExpiresBy != nil {
			deadline := *tr.ExpiresBy
			tr.ExpiresBy = &deadline
		}
		out.Transitions[i] = tr
	}
	return &out
}
