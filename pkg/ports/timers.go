package ports

import "time"

// TimerHandle cancels a pending timer. Stopping an already-fired or
// already-stopped timer must be a no-op.
type TimerHandle interface {
	// Stop cancels the timer. It reports whether the callback was prevented
	// from running.
	Stop() bool
}

// TimerService schedules deferred callbacks. The engine uses it exclusively
// for expiration timers, at most one per transition.
type TimerService interface {
	AfterFunc(d time.Duration, fn func()) TimerHandle
}
