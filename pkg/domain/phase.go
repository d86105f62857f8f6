package domain

// Phase is a transition's position in its lifecycle.
// The ordering matters: PhaseMount < PhaseEnter < PhaseUpdate < PhaseLeave.
type Phase int

const (
	// PhaseMount means the transition was created in the current pass and has
	// not yet been committed. It is never observable across passes.
	PhaseMount Phase = iota

	// PhaseEnter means the item is animating in (or animated back in after a
	// cancelled leave).
	PhaseEnter

	// PhaseUpdate means the item persisted and is animating towards a new
	// update target.
	PhaseUpdate

	// PhaseLeave means the item disappeared from the collection and is
	// animating out. The transition stays tracked until it expires.
	PhaseLeave
)

func (p Phase) String() string {
	switch p {
	case PhaseMount:
		return "mount"
	case PhaseEnter:
		return "enter"
	case PhaseUpdate:
		return "update"
	case PhaseLeave:
		return "leave"
	default:
		return "unknown"
	}
}
