package testutils

import (
	"sync"
	"time"

	"github.com/driftkit/sway/pkg/ports"
)

// Timer is a manually-fired timer scheduled through TimerService.
type Timer struct {
	D time.Duration

	mu      sync.Mutex
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer. No-op when already fired or stopped.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Fire runs the callback unless the timer was stopped or already fired.
func (t *Timer) Fire() {
	t.mu.Lock()
	if t.fired || t.stopped {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// TimerService is a ports.TimerService that never fires on its own; tests
// drive timers explicitly.
type TimerService struct {
	mu     sync.Mutex
	timers []*Timer
}

// NewTimerService creates an empty manual timer service.
func NewTimerService() *TimerService {
	return &TimerService{}
}

func (s *TimerService) AfterFunc(d time.Duration, fn func()) ports.TimerHandle {
	t := &Timer{D: d, fn: fn}
	s.mu.Lock()
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return t
}

// Pending counts timers that are armed: neither fired nor stopped.
func (s *TimerService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		t.mu.Lock()
		if !t.fired && !t.stopped {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

// Scheduled returns every timer ever armed, in scheduling order.
func (s *TimerService) Scheduled() []*Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Timer(nil), s.timers...)
}

// FireAll fires every armed timer in scheduling order.
func (s *TimerService) FireAll() {
	for _, t := range s.Scheduled() {
		t.Fire()
	}
}
