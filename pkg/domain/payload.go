package domain

import "time"

// Payload is one update's worth of animation instructions for a controller.
// It is built by the diff engine once per changed transition per pass and
// consumed by Controller.Update; it is never persisted.
type Payload struct {
	// To holds the goal values for this update.
	To Values

	// From optionally resets the starting values. Only set when the
	// transition is entering.
	From Values

	// Delay postpones the start of the animation. Includes the accumulated
	// trail stagger plus any per-target delay.
	Delay time.Duration

	// Config overrides the controller's spring tuning for this update.
	// Nil keeps the controller's current configuration.
	Config *Config

	// Done is invoked when the animation settles or is stopped. The finished
	// flag reports whether the goal was actually reached.
	Done func(finished bool)
}
