package runtime

import (
	"time"

	"github.com/driftkit/sway/pkg/domain"
)

// registerExpiry decides when a leaving transition, whose animation just
// completed, is actually removed. Invoked from the wrapped completion
// callback.
//
// Policy:
//   - Expires <= 0: request an immediate re-evaluation; the next pass drops it.
//   - every tracked controller idle: re-evaluate now, nothing is visibly
//     animating anyway.
//   - finite Expires: arm a dismissal timer, cancellable if the transition is
//     dropped first or the engine closes.
//   - ExpiresNever with busy siblings: schedule nothing; removal waits for
//     whatever pass happens next (lazy convergence).
func (e *Engine[T]) registerExpiry(t *Transition[T]) {
	e.mu.Lock()
	if e.closed || t.Phase != domain.PhaseLeave || t.ExpiresBy != nil {
		// Resurrected, already registered, or torn down in the meantime.
		e.mu.Unlock()
		return
	}

	expires := e.cfg.Expires
	now := time.Now()
	deadline := now.Add(expires)
	t.ExpiresBy = &deadline

	ev := domain.ExpireEvent{Time: now, TransitionID: t.ID, ExpiresBy: deadline}

	if expires <= 0 {
		e.mu.Unlock()
		e.emitExpire(ev)
		e.invalidate()
		return
	}

	allIdle := true
	for _, s := range e.seq {
		if !s.Ctrl.Idle() {
			allIdle = false
			break
		}
	}
	if allIdle {
		e.mu.Unlock()
		e.emitExpire(ev)
		e.invalidate()
		return
	}

	if expires != domain.ExpiresNever {
		t.expiration = e.cfg.Timers.AfterFunc(expires, e.invalidate)
		ev.TimerArmed = true
	}
	e.mu.Unlock()
	e.emitExpire(ev)
}

func (e *Engine[T]) emitExpire(ev domain.ExpireEvent) {
	if h := e.cfg.Hooks.OnExpireScheduled; h != nil {
		h(ev)
	}
}
