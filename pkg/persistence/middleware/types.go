// Package middleware provides composable wrappers around a SnapshotStore,
// adding behavior such as encryption at rest or redaction of item labels.
package middleware

import "github.com/driftkit/sway/pkg/ports"

// Middleware wraps a SnapshotStore to add behavior.
type Middleware func(ports.SnapshotStore) ports.SnapshotStore

// Chain applies middlewares right to left, so the first listed is the
// outermost wrapper.
func Chain(store ports.SnapshotStore, mws ...Middleware) ports.SnapshotStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
