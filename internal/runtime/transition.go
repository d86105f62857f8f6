package runtime

import (
	"time"

	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/ports"
)

// Transition is the tracked lifecycle state for one item instance across
// passes. Its ID is stable for its whole lifetime and never reused.
type Transition[T comparable] struct {
	ID    int64
	Item  T
	Phase domain.Phase

	// Ctrl is the animation controller owned by this transition. It is
	// destroyed when the transition is dropped for good.
	Ctrl ports.Controller

	// ExpiresBy is set once the leave animation has completed. Its presence
	// marks the transition for removal; the next pass drops it.
	ExpiresBy *time.Time

	// expiration is the pending dismissal timer, at most one at a time.
	// Cancelled when the transition is dropped or the engine closes.
	expiration ports.TimerHandle
}

// change is the ephemeral per-pass delta for one transition. It is consumed
// by the commit step and never persisted.
type change[T comparable] struct {
	t       *Transition[T]
	phase   domain.Phase
	payload *domain.Payload

	// applied marks payloads pushed during the diff itself (fresh mounts),
	// which the commit step must not push again.
	applied bool
}
