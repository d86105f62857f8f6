package middleware

import (
	"context"
	"regexp"

	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/ports"
)

// Redacted replaces item labels that match a redaction pattern.
const Redacted = "***"

type redactMiddleware struct {
	next     ports.SnapshotStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks string item labels
// matching any of the patterns before snapshots are persisted. Items carry
// caller data, which may include user content that must not reach storage.
func NewRedactMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactMiddleware) Save(ctx context.Context, groupID string, snap *domain.Snapshot) error {
	// Clone before masking so the in-memory snapshot stays intact.
	cloned := *snap
	cloned.Transitions = make([]domain.TransitionRecord, len(snap.Transitions))
	copy(cloned.Transitions, snap.Transitions)

	for i, tr := range cloned.Transitions {
		label, ok := tr.Item.(string)
		if !ok {
			continue
		}
		for _, p := range m.patterns {
			if p.MatchString(label) {
				cloned.Transitions[i].Item = Redacted
				break
			}
		}
	}

	return m.next.Save(ctx, groupID, &cloned)
}

func (m *redactMiddleware) Load(ctx context.Context, groupID string) (*domain.Snapshot, error) {
	return m.next.Load(ctx, groupID)
}

func (m *redactMiddleware) Delete(ctx context.Context, groupID string) error {
	return m.next.Delete(ctx, groupID)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
