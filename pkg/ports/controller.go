package ports

import "github.com/driftkit/sway/pkg/domain"

// Controller is the animation engine owned by one transition. The lifecycle
// core never interpolates values itself; it only pushes instructions into a
// controller and queries its state.
//
// Implementations must be safe for concurrent use: the engine calls into the
// controller from passes and timer callbacks, and the controller re-enters
// the engine through completion callbacks. Completion callbacks must never be
// invoked while the controller holds its own internal lock.
type Controller interface {
	// ID returns the identity assigned at creation. The engine reuses it as
	// the transition ID.
	ID() int64

	// Update merges new animation instructions. It never starts the
	// animation by itself.
	Update(p domain.Payload)

	// Start begins or resumes the animation. If onDone is non-nil it is
	// invoked once the controller settles (or immediately, if the controller
	// is already idle). The finished flag reports whether the goal values
	// were reached.
	Start(onDone func(finished bool))

	// Stop halts the animation immediately. When finished is true the
	// controller snaps to its goal and completion callbacks observe a
	// finished animation; otherwise they observe an interrupted one.
	Stop(finished bool)

	// Idle reports whether no animation is currently running.
	Idle() bool

	// Values returns the current animated values.
	Values() domain.Values

	// Destroy stops the controller and releases its resources. Behavior of
	// any other method after Destroy is undefined.
	Destroy()
}

// Factory constructs the controller for a new transition. The id becomes both
// the controller's and the transition's identity.
type Factory func(id int64) Controller
