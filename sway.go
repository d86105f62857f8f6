package sway

import (
	"context"
	"sync"

	"log/slog"
	"time"

	"github.com/driftkit/sway/internal/logging"
	"github.com/driftkit/sway/internal/runtime"
	"github.com/driftkit/sway/pkg/adapters/spring"
	"github.com/driftkit/sway/pkg/adapters/timer"
	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/ports"
)

// Convenience aliases so most callers only import the root package.
type (
	// Target is a raw animation target, possibly mixing reserved control
	// keys ("delay", "config", "done") with animatable values.
	Target = domain.Target

	// Values holds animated channels by name.
	Values = domain.Values

	// Config tunes spring interpolation.
	Config = domain.Config
)

// ExpiresNever keeps finished leavers tracked until an external update
// removes them.
const ExpiresNever = domain.ExpiresNever

// Version is the library version. Release builds override it via ldflags.
var Version = "0.1.0-dev"

// Static wraps a fixed target as a producer.
func Static[T comparable](t Target) domain.TargetFunc[T] {
	return domain.Static[T](t)
}

// StaticConfig wraps fixed spring tuning as a per-item config producer.
func StaticConfig[T comparable](c Config) domain.ConfigFunc[T] {
	return domain.StaticConfig[T](c)
}

// Group is the high-level entry point: it tracks a dynamic collection of
// items and drives a per-item animation controller through the
// enter/update/leave lifecycle as the collection changes between updates.
type Group[T comparable] struct {
	eng    *runtime.Engine[T]
	id     string
	logger *slog.Logger
}

// Option defines a functional option for configuring a Group.
type Option[T comparable] func(*settings[T])

type settings[T comparable] struct {
	cfg    runtime.Config[T]
	id     string
	record func(*domain.Snapshot)
}

// WithInitial sets the target for items present on the very first pass.
// Without it, first-pass items animate to the enter target like any other.
func WithInitial[T comparable](p domain.TargetFunc[T]) Option[T] {
	return func(s *settings[T]) { s.cfg.Initial = p }
}

// WithEnter sets the target for items entering the collection. Nothing
// animates without it.
func WithEnter[T comparable](p domain.TargetFunc[T]) Option[T] {
	return func(s *settings[T]) { s.cfg.Enter = p }
}

// WithUpdate sets the target re-applied to persisting items each pass.
// Leave it unset to keep persisting items untouched.
func WithUpdate[T comparable](p domain.TargetFunc[T]) Option[T] {
	return func(s *settings[T]) { s.cfg.Update = p }
}

// WithLeave sets the target for items that disappeared from the collection.
func WithLeave[T comparable](p domain.TargetFunc[T]) Option[T] {
	return func(s *settings[T]) { s.cfg.Leave = p }
}

// WithFrom sets the starting values applied whenever a transition enters.
func WithFrom[T comparable](p domain.TargetFunc[T]) Option[T] {
	return func(s *settings[T]) { s.cfg.From = p }
}

// WithConfig sets the per-item spring tuning producer.
func WithConfig[T comparable](p domain.ConfigFunc[T]) Option[T] {
	return func(s *settings[T]) { s.cfg.SpringConfig = p }
}

// WithTrail staggers animation starts by d per transition in sequence order.
func WithTrail[T comparable](d time.Duration) Option[T] {
	return func(s *settings[T]) { s.cfg.Trail = d }
}

// WithExpires sets how long after its leave animation a transition stays
// tracked before being dropped. Zero drops on the very next pass; the
// default, ExpiresNever, keeps it until an external update.
func WithExpires[T comparable](d time.Duration) Option[T] {
	return func(s *settings[T]) { s.cfg.Expires = d }
}

// WithManualStart disables auto-starting controllers on commit. Only an
// explicit Group.Start drives them.
func WithManualStart[T comparable]() Option[T] {
	return func(s *settings[T]) { s.cfg.ManualStart = true }
}

// WithScheduler delegates re-evaluation scheduling to the host: instead of
// internally re-running the last collection, the group calls fn and expects
// the host to call Update again. Calls coalesce until that happens.
func WithScheduler[T comparable](fn func()) Option[T] {
	return func(s *settings[T]) { s.cfg.Invalidate = fn }
}

// WithTimers replaces the expiration timer service.
func WithTimers[T comparable](ts ports.TimerService) Option[T] {
	return func(s *settings[T]) { s.cfg.Timers = ts }
}

// WithControllerFactory replaces the default spring controller.
func WithControllerFactory[T comparable](f ports.Factory) Option[T] {
	return func(s *settings[T]) { s.cfg.Factory = f }
}

// WithHooks registers lifecycle observability hooks.
func WithHooks[T comparable](h domain.LifecycleHooks) Option[T] {
	return func(s *settings[T]) { s.cfg.Hooks = h }
}

// WithLogger sets a structured logger for internal events (deferred pass
// failures, recording errors).
func WithLogger[T comparable](logger *slog.Logger) Option[T] {
	return func(s *settings[T]) { s.cfg.Logger = logger }
}

// WithGroupID names the group in snapshots and recordings.
func WithGroupID[T comparable](id string) Option[T] {
	return func(s *settings[T]) { s.id = id }
}

// WithRecorder sends a snapshot of the tracked sequence to sink after every
// pass, including internally-triggered expiry passes.
func WithRecorder[T comparable](sink func(*domain.Snapshot)) Option[T] {
	return func(s *settings[T]) { s.record = sink }
}

// New creates a Group. Defaults: spring controllers, real timers, no-op
// logger, infinite expiry.
func New[T comparable](opts ...Option[T]) *Group[T] {
	s := settings[T]{cfg: runtime.Config[T]{Expires: domain.ExpiresNever}}
	for _, opt := range opts {
		opt(&s)
	}
	if s.cfg.Timers == nil {
		s.cfg.Timers = timer.New()
	}
	if s.cfg.Factory == nil {
		s.cfg.Factory = func(id int64) ports.Controller { return spring.New(id) }
	}
	if s.cfg.Logger == nil {
		s.cfg.Logger = logging.NewNop()
	}

	g := &Group[T]{id: s.id, logger: s.cfg.Logger}

	if s.record != nil {
		sink := s.record
		userOnPass := s.cfg.Hooks.OnPass
		s.cfg.Hooks.OnPass = func(ev domain.PassEvent) {
			if userOnPass != nil {
				userOnPass(ev)
			}
			sink(g.Snapshot())
		}
	}

	g.eng = runtime.New(s.cfg)
	return g
}

// Update runs one evaluation pass against the current collection: new items
// enter, missing items leave, expired leavers are dropped.
func (g *Group[T]) Update(items []T) error {
	_, err := g.eng.Pass(items, false)
	return err
}

// Reset tears down every tracked transition and treats items as a fresh
// first collection.
func (g *Group[T]) Reset(items []T) error {
	_, err := g.eng.Pass(items, true)
	return err
}

// Controllers returns the tracked controllers in sequence order.
func (g *Group[T]) Controllers() []ports.Controller {
	return g.eng.Controllers()
}

// Start begins or resumes every tracked controller and blocks until all of
// them settle or ctx is done.
func (g *Group[T]) Start(ctx context.Context) error {
	ctrls := g.eng.Controllers()
	var wg sync.WaitGroup
	wg.Add(len(ctrls))
	for _, c := range ctrls {
		c.Start(func(bool) { wg.Done() })
	}

	settled := make(chan struct{})
	go func() {
		wg.Wait()
		close(settled)
	}()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop immediately halts every tracked controller. When finished is true,
// controllers snap to their goals and completion callbacks observe a
// finished animation.
func (g *Group[T]) Stop(finished bool) {
	for _, c := range g.eng.Controllers() {
		c.Stop(finished)
	}
}

// Snapshot captures the tracked sequence for inspection or recording.
func (g *Group[T]) Snapshot() *domain.Snapshot {
	snap := g.eng.Snapshot()
	snap.GroupID = g.id
	return snap
}

// Len returns the number of tracked transitions, leavers included.
func (g *Group[T]) Len() int {
	return g.eng.Len()
}

// Close tears the group down: pending expiration timers are cancelled and
// every controller destroyed.
func (g *Group[T]) Close() {
	g.eng.Close()
}
