package domain

import "time"

// PhaseEvent reports a committed phase change on one transition.
type PhaseEvent struct {
	Time         time.Time
	TransitionID int64
	From         Phase
	To           Phase
}

// ExpireEvent reports that a leaving transition finished its animation and
// was registered for dismissal.
type ExpireEvent struct {
	Time         time.Time
	TransitionID int64
	ExpiresBy    time.Time

	// TimerArmed is true when a dismissal timer was actually scheduled, false
	// when removal was requested immediately or left to a later pass.
	TimerArmed bool
}

// DropEvent reports that an expired transition was permanently removed.
type DropEvent struct {
	Time         time.Time
	TransitionID int64
}

// PassEvent summarizes one completed evaluation pass.
type PassEvent struct {
	Time    time.Time
	Pass    int
	Tracked int
	Changed int
}

// LifecycleHooks defines optional callbacks for engine observability.
// All hooks fire synchronously from within the pass (or, for expiry, from the
// completion callback); keep them fast and non-blocking.
type LifecycleHooks struct {
	OnPhaseChange     func(PhaseEvent)
	OnExpireScheduled func(ExpireEvent)
	OnDrop            func(DropEvent)
	OnPass            func(PassEvent)
}
