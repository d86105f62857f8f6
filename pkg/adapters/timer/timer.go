// Package timer provides the default ports.TimerService backed by the
// standard library's time.AfterFunc.
package timer

import (
	"time"

	"github.com/driftkit/sway/pkg/ports"
)

// Service schedules callbacks on real wall-clock timers.
type Service struct{}

// New creates the default timer service.
func New() *Service {
	return &Service{}
}

func (*Service) AfterFunc(d time.Duration, fn func()) ports.TimerHandle {
	return handle{t: time.AfterFunc(d, fn)}
}

type handle struct {
	t *time.Timer
}

// Stop cancels the timer. Stopping an already-fired timer is a no-op.
func (h handle) Stop() bool {
	return h.t.Stop()
}
