package testutils

import (
	"sync"

	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/ports"
)

// Controller is a scriptable ports.Controller for engine tests. It performs
// no interpolation: animations run until a test calls Finish, except when
// SettleOnStart makes Start complete synchronously.
type Controller struct {
	SettleOnStart bool

	mu        sync.Mutex
	id        int64
	idle      bool
	destroyed bool
	values    domain.Values
	targets   domain.Values
	updates   []domain.Payload
	pending   []func(bool)
	starts    int
	stops     int
}

// NewController returns an idle controller with the given identity.
func NewController(id int64) *Controller {
	return &Controller{id: id, idle: true, values: domain.Values{}}
}

func (c *Controller) ID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

func (c *Controller) Update(p domain.Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, p)
	for k, v := range p.From {
		c.values[k] = v
	}
	if p.To != nil {
		c.targets = p.To.Clone()
	}
	if p.Done != nil {
		c.pending = append(c.pending, p.Done)
	}
}

func (c *Controller) Start(onDone func(finished bool)) {
	c.mu.Lock()
	c.starts++
	if len(c.pending) == 0 && c.idle {
		// Nothing to animate: report settled immediately.
		c.mu.Unlock()
		if onDone != nil {
			onDone(true)
		}
		return
	}
	c.idle = false
	if onDone != nil {
		c.pending = append(c.pending, onDone)
	}
	settle := c.SettleOnStart
	c.mu.Unlock()

	if settle {
		c.Finish(true)
	}
}

func (c *Controller) Stop(finished bool) {
	c.mu.Lock()
	c.stops++
	c.mu.Unlock()
	c.Finish(finished)
}

func (c *Controller) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idle
}

func (c *Controller) Values() domain.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

func (c *Controller) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.idle = true
	c.pending = nil
	c.mu.Unlock()
}

// Finish settles the current animation and fires every pending completion
// callback outside the controller lock, as the ports contract requires.
func (c *Controller) Finish(finished bool) {
	c.mu.Lock()
	if c.idle && len(c.pending) == 0 {
		c.mu.Unlock()
		return
	}
	c.idle = true
	if finished {
		for k, v := range c.targets {
			c.values[k] = v
		}
	}
	done := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, fn := range done {
		fn(finished)
	}
}

// Updates returns a copy of every payload pushed so far.
func (c *Controller) Updates() []domain.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Payload(nil), c.updates...)
}

// Starts returns how many times Start was called.
func (c *Controller) Starts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.starts
}

// Destroyed reports whether Destroy was called.
func (c *Controller) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// Registry tracks every controller built through its Factory, keyed by ID.
type Registry struct {
	mu    sync.Mutex
	ctrls map[int64]*Controller

	// SettleOnStart is applied to every new controller.
	SettleOnStart bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctrls: make(map[int64]*Controller)}
}

// Factory returns a ports.Factory that records created controllers.
func (r *Registry) Factory() ports.Factory {
	return func(id int64) ports.Controller {
		c := NewController(id)
		c.SettleOnStart = r.SettleOnStart
		r.mu.Lock()
		r.ctrls[id] = c
		r.mu.Unlock()
		return c
	}
}

// Get returns the controller created with the given ID, or nil.
func (r *Registry) Get(id int64) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctrls[id]
}

// Count returns the number of controllers ever created.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ctrls)
}
