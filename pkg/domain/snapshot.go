package domain

import "time"

// TransitionRecord is the serializable view of one tracked transition.
type TransitionRecord struct {
	ID        int64      `json:"id"`
	Item      any        `json:"item"`
	Phase     string     `json:"phase"`
	Values    Values     `json:"values,omitempty"`
	Idle      bool       `json:"idle"`
	ExpiresBy *time.Time `json:"expires_by,omitempty"`
}

// Snapshot captures the tracked sequence of a group after a pass. It is what
// gets persisted by recorders and served by the inspection endpoint.
type Snapshot struct {
	GroupID     string             `json:"group_id,omitempty"`
	Pass        int                `json:"pass"`
	TakenAt     time.Time          `json:"taken_at"`
	Transitions []TransitionRecord `json:"transitions,omitempty"`

	// Sealed holds the encrypted form of the snapshot when a store
	// middleware encrypts at rest. A sealed snapshot has no Transitions.
	Sealed string `json:"sealed,omitempty"`
}
