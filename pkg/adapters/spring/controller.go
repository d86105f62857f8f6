// Package spring provides the default animation controller: damped spring
// interpolation over named numeric channels, stepped on its own frame loop.
package spring

import (
	"math"
	"sync"
	"time"

	"github.com/driftkit/sway/pkg/domain"
)

// DefaultInterval is the frame step of the interpolation loop.
const DefaultInterval = 16 * time.Millisecond

// maxFrameDelta caps the integration step after a stall so springs never
// explode when the process is paused (debugger, suspended laptop).
const maxFrameDelta = 64 * time.Millisecond

type state struct {
	pos float64
	vel float64
	to  float64
}

// Controller implements ports.Controller with spring physics. One goroutine
// runs per active animation; it exits as soon as every channel settles.
type Controller struct {
	id       int64
	interval time.Duration

	mu        sync.Mutex
	cfg       domain.Config
	springs   map[string]*state
	delay     time.Duration
	pending   []func(bool)
	running   bool
	destroyed bool
	gen       int
	cancel    chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval overrides the frame step. Mostly for tests.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.interval = d
	}
}

// WithConfig sets the initial spring tuning.
func WithConfig(cfg domain.Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// New creates an idle controller with the given identity.
func New(id int64, opts ...Option) *Controller {
	c := &Controller{
		id:       id,
		interval: DefaultInterval,
		cfg:      domain.DefaultConfig(),
		springs:  make(map[string]*state),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) ID() int64 {
	return c.id
}

// Update merges new animation instructions. From values reset positions and
// kill velocity; To values become the new goals. It never starts the loop.
func (c *Controller) Update(p domain.Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	for k, v := range p.From {
		s := c.spring(k)
		s.pos = v
		s.vel = 0
	}
	for k, v := range p.To {
		c.spring(k).to = v
	}
	if p.Config != nil {
		c.cfg = *p.Config
	}
	c.delay = p.Delay
	if p.Done != nil {
		c.pending = append(c.pending, p.Done)
	}
}

// spring returns the channel state, creating it at rest when unknown.
// Caller holds c.mu.
func (c *Controller) spring(k string) *state {
	s, ok := c.springs[k]
	if !ok {
		s = &state{}
		c.springs[k] = s
	}
	return s
}

// Start begins or resumes the animation. onDone fires once everything
// settles; immediately when there is nothing left to animate.
func (c *Controller) Start(onDone func(finished bool)) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	if !c.running && c.settledLocked() && len(c.pending) == 0 {
		c.mu.Unlock()
		if onDone != nil {
			onDone(true)
		}
		return
	}
	if onDone != nil {
		c.pending = append(c.pending, onDone)
	}
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.gen++
	c.cancel = make(chan struct{})
	delay := c.delay
	c.delay = 0
	go c.run(c.gen, delay, c.cancel)
	c.mu.Unlock()
}

func (c *Controller) run(gen int, delay time.Duration, cancel <-chan struct{}) {
	if delay > 0 {
		t := time.NewTimer(delay)
		select {
		case <-cancel:
			t.Stop()
			return
		case <-t.C:
		}
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-cancel:
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if dt > maxFrameDelta {
				dt = maxFrameDelta
			}

			c.mu.Lock()
			if c.destroyed || c.gen != gen {
				c.mu.Unlock()
				return
			}
			if !c.stepLocked(dt.Seconds()) {
				c.mu.Unlock()
				continue
			}
			c.running = false
			done := c.pending
			c.pending = nil
			c.mu.Unlock()

			// Callbacks run outside the lock; they re-enter the engine.
			for _, fn := range done {
				fn(true)
			}
			return
		}
	}
}

// stepLocked advances every channel by dt seconds and reports whether all of
// them settled. Settled channels snap exactly to their goal.
func (c *Controller) stepLocked(dt float64) bool {
	mass := c.cfg.Mass
	if mass <= 0 {
		mass = 1
	}
	precision := c.cfg.Precision
	if precision <= 0 {
		precision = 0.005
	}

	settled := true
	for _, s := range c.springs {
		displacement := s.pos - s.to
		if math.Abs(displacement) <= precision && math.Abs(s.vel) <= precision {
			s.pos = s.to
			s.vel = 0
			continue
		}
		accel := (-c.cfg.Tension*displacement - c.cfg.Friction*s.vel) / mass
		s.vel += accel * dt
		s.pos += s.vel * dt
		settled = false
	}
	return settled
}

// Stop halts the animation immediately. finished snaps values to their goals
// and reports a finished animation to completion callbacks.
func (c *Controller) Stop(finished bool) {
	c.mu.Lock()
	if c.destroyed || (!c.running && len(c.pending) == 0) {
		c.mu.Unlock()
		return
	}
	c.haltLocked()
	if finished {
		for _, s := range c.springs {
			s.pos = s.to
			s.vel = 0
		}
	}
	done := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, fn := range done {
		fn(finished)
	}
}

// haltLocked stops the frame loop without touching callbacks.
func (c *Controller) haltLocked() {
	c.running = false
	c.gen++
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
}

func (c *Controller) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.running
}

func (c *Controller) Values() domain.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(domain.Values, len(c.springs))
	for k, s := range c.springs {
		out[k] = s.pos
	}
	return out
}

// Destroy stops the controller for good. Pending completion callbacks are
// discarded, not invoked.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.haltLocked()
	c.pending = nil
}

// settledLocked reports whether every channel rests at its goal.
// Caller holds c.mu.
func (c *Controller) settledLocked() bool {
	for _, s := range c.springs {
		if s.pos != s.to || s.vel != 0 {
			return false
		}
	}
	return true
}
