package runtime

import (
	"fmt"
	"time"

	"github.com/driftkit/sway/pkg/domain"
)

// diffLocked computes the next tracked sequence and the per-transition
// changes for one pass. Caller holds e.mu.
//
// Ordering: carried transitions keep their relative order, new transitions
// append in item order. The stagger delay grows by Trail per transition
// processed, so the first transition of a pass always starts at zero.
func (e *Engine[T]) diffLocked(items []T, reset bool) (seq []*Transition[T], changes []*change[T], dropped []*Transition[T], err error) {
	isFirst := reset || e.passes == 0

	if isFirst {
		// Reset tears down whatever was tracked before.
		for _, t := range e.seq {
			if t.expiration != nil {
				t.expiration.Stop()
				t.expiration = nil
			}
			dropped = append(dropped, t)
		}
	} else {
		for _, t := range e.seq {
			if t.ExpiresBy != nil {
				// A fully-expired leaver is permanently removed here. Its
				// dismissal timer, if still pending, dies with it.
				if t.expiration != nil {
					t.expiration.Stop()
					t.expiration = nil
				}
				dropped = append(dropped, t)
				continue
			}
			seq = append(seq, t)
		}
	}

	// Items not matched by any carried transition are new. Matching is a
	// one-to-one scan consuming the first structurally-equal unmatched
	// transition, so duplicate values pair up positionally.
	carried := seq
	used := make([]bool, len(carried))
	for _, item := range items {
		matched := false
		for j := range carried {
			if !used[j] && carried[j].Item == item {
				used[j] = true
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		e.nextID++
		seq = append(seq, &Transition[T]{
			ID:    e.nextID,
			Item:  item,
			Phase: domain.PhaseMount,
			Ctrl:  e.cfg.Factory(e.nextID),
		})
	}

	delay := -e.cfg.Trail
	for i, t := range seq {
		delay += e.cfg.Trail

		var producer domain.TargetFunc[T]
		var next domain.Phase
		// A carried transition is deleted iff the item scan did not pair it
		// with an occurrence; with duplicate values this keeps exactly one
		// transition per occurrence alive. Fresh transitions always have
		// their item present.
		present := i >= len(carried) || used[i]

		switch t.Phase {
		case domain.PhaseMount:
			producer = e.cfg.Enter
			if isFirst && e.cfg.Initial != nil {
				producer = e.cfg.Initial
			}
			next = domain.PhaseEnter
		case domain.PhaseEnter, domain.PhaseUpdate:
			switch {
			case !present:
				producer, next = e.cfg.Leave, domain.PhaseLeave
			case e.cfg.Update != nil:
				producer, next = e.cfg.Update, domain.PhaseUpdate
			default:
				// Persisting item with no update target: left untouched.
				continue
			}
		case domain.PhaseLeave:
			if !present {
				// Still leaving.
				continue
			}
			// The item reappeared mid-leave: resurrect.
			producer, next = e.cfg.Enter, domain.PhaseEnter
		}

		c, cerr := e.buildChange(t, next, producer, i, delay)
		if cerr != nil {
			return nil, nil, nil, cerr
		}
		changes = append(changes, c)
	}
	return seq, changes, dropped, nil
}

// buildChange resolves producers into a payload and wraps its completion
// callback with the engine's expiration bookkeeping.
func (e *Engine[T]) buildChange(t *Transition[T], next domain.Phase, producer domain.TargetFunc[T], index int, delay time.Duration) (*change[T], error) {
	target := domain.ResolveTarget(producer, t.Item, index)
	to, extras, err := domain.SplitTarget(target)
	if err != nil {
		return nil, fmt.Errorf("transition %d: %w", t.ID, err)
	}

	p := domain.Payload{To: to, Delay: delay + extras.Delay}

	if next == domain.PhaseEnter && e.cfg.From != nil {
		fromTarget := domain.ResolveTarget(e.cfg.From, t.Item, index)
		from, _, ferr := domain.SplitTarget(fromTarget)
		if ferr != nil {
			return nil, fmt.Errorf("transition %d: from: %w", t.ID, ferr)
		}
		p.From = from
	}

	switch {
	case extras.Config != nil:
		p.Config = extras.Config
	case e.cfg.SpringConfig != nil:
		c := e.cfg.SpringConfig(t.Item, index)
		p.Config = &c
	}

	userDone := extras.Done
	p.Done = func(finished bool) {
		if userDone != nil {
			userDone(finished)
		}
		if next == domain.PhaseLeave {
			e.registerExpiry(t)
		}
	}

	c := &change[T]{t: t, phase: next, payload: &p}
	if t.Phase == domain.PhaseMount {
		// Freshly created transitions get their payload applied right away
		// so their animated state is queryable within the same pass.
		t.Ctrl.Update(p)
		c.applied = true
	}
	return c, nil
}
