package runtime

import (
	"time"

	"log/slog"
	"sync"

	"github.com/driftkit/sway/internal/logging"
	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/ports"
)

// Config bundles everything a pass needs: per-phase target producers, timing
// knobs and the collaborator implementations.
type Config[T comparable] struct {
	// Trail is the stagger delay accumulated across transitions in sequence
	// order. The first transition of a pass starts with zero delay.
	Trail time.Duration

	// Expires is the dismissal delay after a leave animation completes.
	// Use domain.ExpiresNever to keep finished leavers tracked until some
	// other pass removes them.
	Expires time.Duration

	// Target producers per phase. Enter is what makes items visible; without
	// it nothing animates. Update is optional: absent, persisting items are
	// left untouched.
	Initial domain.TargetFunc[T]
	Enter   domain.TargetFunc[T]
	Update  domain.TargetFunc[T]
	Leave   domain.TargetFunc[T]
	From    domain.TargetFunc[T]

	// SpringConfig produces the per-item interpolation tuning.
	SpringConfig domain.ConfigFunc[T]

	// ManualStart disables auto-starting committed controllers; only an
	// explicit Start on the handle drives them.
	ManualStart bool

	// Invalidate, when set, delegates re-evaluation scheduling to the host
	// instead of re-running the last collection internally. Calls coalesce
	// until the next pass runs.
	Invalidate func()

	Hooks   domain.LifecycleHooks
	Timers  ports.TimerService
	Factory ports.Factory
	Logger  *slog.Logger
}

// Engine drives the transition lifecycle for one collection. All diffing and
// phase computation happens synchronously inside Pass; timers and controller
// completion callbacks are the only deferred re-entry points.
type Engine[T comparable] struct {
	cfg Config[T]

	mu        sync.Mutex
	seq       []*Transition[T]
	passes    int
	nextID    int64
	lastItems []T

	// pending coalesces invalidation requests until the next pass starts.
	pending bool
	closed  bool
}

// New creates an engine. Factory and Timers must be set; Logger defaults to
// a no-op.
func New[T comparable](cfg Config[T]) *Engine[T] {
	if cfg.Factory == nil {
		panic("runtime: Config.Factory is required")
	}
	if cfg.Timers == nil {
		panic("runtime: Config.Timers is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	return &Engine[T]{cfg: cfg}
}

// Pass runs one synchronous evaluation of the lifecycle diff against items
// and commits the result: phases are advanced, payloads pushed into
// controllers and, unless ManualStart is set, controllers started.
// reset forces first-pass semantics, tearing down the previous sequence.
//
// It returns the number of transitions that changed.
func (e *Engine[T]) Pass(items []T, reset bool) (int, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return 0, domain.ErrGroupClosed
	}
	e.pending = false

	seq, changes, dropped, err := e.diffLocked(items, reset)
	if err != nil {
		e.mu.Unlock()
		return 0, err
	}

	// The latest-sequence slot is updated before anything can observe it:
	// completion callbacks registered in earlier passes must see the fresh
	// sibling set for the all-idle check.
	e.seq = seq
	e.lastItems = append([]T(nil), items...)
	e.passes++
	pass := e.passes

	now := time.Now()
	events := make([]domain.PhaseEvent, 0, len(changes))
	for _, c := range changes {
		events = append(events, domain.PhaseEvent{
			Time:         now,
			TransitionID: c.t.ID,
			From:         c.t.Phase,
			To:           c.phase,
		})
		c.t.Phase = c.phase
	}
	tracked := len(seq)
	e.mu.Unlock()

	// Controllers are touched outside the engine lock: starting one may
	// settle synchronously and re-enter the engine through its completion
	// callback.
	for _, t := range dropped {
		t.Ctrl.Destroy()
	}
	for _, c := range changes {
		if c.payload != nil && !c.applied {
			c.t.Ctrl.Update(*c.payload)
		}
		if !e.cfg.ManualStart {
			c.t.Ctrl.Start(nil)
		}
	}

	if h := e.cfg.Hooks.OnDrop; h != nil {
		for _, t := range dropped {
			h(domain.DropEvent{Time: now, TransitionID: t.ID})
		}
	}
	if h := e.cfg.Hooks.OnPhaseChange; h != nil {
		for _, ev := range events {
			h(ev)
		}
	}
	if h := e.cfg.Hooks.OnPass; h != nil {
		h(domain.PassEvent{Time: now, Pass: pass, Tracked: tracked, Changed: len(changes)})
	}
	return len(changes), nil
}

// invalidate requests another evaluation pass. Requests coalesce: repeated
// calls before the next pass actually runs are no-ops. Without a host
// Invalidate hook the engine synchronously re-runs the last observed
// collection.
func (e *Engine[T]) invalidate() {
	e.mu.Lock()
	if e.closed || e.pending {
		e.mu.Unlock()
		return
	}
	e.pending = true
	host := e.cfg.Invalidate
	items := e.lastItems
	e.mu.Unlock()

	if host != nil {
		host()
		return
	}
	if _, err := e.Pass(items, false); err != nil {
		e.cfg.Logger.Error("re-evaluation pass failed", "err", err)
	}
}

// Close tears the engine down: pending expiration timers are cancelled and
// every controller destroyed. Timers that already fired become no-ops.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	seq := e.seq
	e.seq = nil
	for _, t := range seq {
		if t.expiration != nil {
			t.expiration.Stop()
			t.expiration = nil
		}
	}
	e.mu.Unlock()

	for _, t := range seq {
		t.Ctrl.Destroy()
	}
}

// Controllers returns the controllers of the tracked sequence, in order.
func (e *Engine[T]) Controllers() []ports.Controller {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ports.Controller, len(e.seq))
	for i, t := range e.seq {
		out[i] = t.Ctrl
	}
	return out
}

// View is a read-only projection of one tracked transition for rendering.
type View[T comparable] struct {
	ID     int64
	Item   T
	Phase  domain.Phase
	Values domain.Values
}

// Views projects the tracked sequence for the render adapter. Output order
// matches sequence order; identities are transition IDs, not items.
//
// Controller queries are safe under the engine lock because controllers never
// invoke completion callbacks while holding their own lock (ports.Controller
// contract).
func (e *Engine[T]) Views() []View[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]View[T], len(e.seq))
	for i, t := range e.seq {
		out[i] = View[T]{ID: t.ID, Item: t.Item, Phase: t.Phase, Values: t.Ctrl.Values()}
	}
	return out
}

// Snapshot captures the tracked sequence as a serializable record.
func (e *Engine[T]) Snapshot() *domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := &domain.Snapshot{
		Pass:        e.passes,
		TakenAt:     time.Now(),
		Transitions: make([]domain.TransitionRecord, 0, len(e.seq)),
	}
	for _, t := range e.seq {
		snap.Transitions = append(snap.Transitions, domain.TransitionRecord{
			ID:        t.ID,
			Item:      t.Item,
			Phase:     t.Phase.String(),
			Values:    t.Ctrl.Values(),
			Idle:      t.Ctrl.Idle(),
			ExpiresBy: t.ExpiresBy,
		})
	}
	return snap
}

// Len returns the number of tracked transitions.
func (e *Engine[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.seq)
}
