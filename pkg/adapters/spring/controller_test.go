package spring_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/driftkit/sway/pkg/adapters/spring"
	"github.com/driftkit/sway/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastController(id int64) *spring.Controller {
	// Stiff spring and a tight frame step so tests settle in well under a
	// second.
	return spring.New(id,
		spring.WithInterval(time.Millisecond),
		spring.WithConfig(domain.Config{Tension: 500, Friction: 40, Mass: 1, Precision: 0.01}),
	)
}

func TestController_SettlesAtGoal(t *testing.T) {
	c := fastController(1)
	defer c.Destroy()

	var finished atomic.Bool
	c.Update(domain.Payload{
		From: domain.Values{"opacity": 0},
		To:   domain.Values{"opacity": 1},
		Done: func(ok bool) { finished.Store(ok) },
	})
	assert.True(t, c.Idle(), "update alone must not start the loop")
	assert.Equal(t, 0.0, c.Values()["opacity"])

	c.Start(nil)
	assert.False(t, c.Idle())

	require.Eventually(t, c.Idle, 2*time.Second, 5*time.Millisecond)
	assert.True(t, finished.Load())
	assert.Equal(t, 1.0, c.Values()["opacity"], "settled channels snap to the goal")
}

func TestController_StartOnDoneImmediateWhenSettled(t *testing.T) {
	c := fastController(1)
	defer c.Destroy()

	called := false
	c.Start(func(ok bool) { called = ok })
	assert.True(t, called, "idle controller reports settled immediately")
}

func TestController_StopUnfinished(t *testing.T) {
	c := fastController(1)
	defer c.Destroy()

	var finished atomic.Bool
	var called atomic.Bool
	c.Update(domain.Payload{
		From: domain.Values{"x": 0},
		To:   domain.Values{"x": 100},
		Done: func(ok bool) { called.Store(true); finished.Store(ok) },
	})
	c.Start(nil)
	c.Stop(false)

	assert.True(t, c.Idle())
	assert.True(t, called.Load())
	assert.False(t, finished.Load(), "interrupted animations report unfinished")
	assert.Less(t, c.Values()["x"], 100.0)
}

func TestController_StopFinishedSnaps(t *testing.T) {
	c := fastController(1)
	defer c.Destroy()

	var finished atomic.Bool
	c.Update(domain.Payload{
		From: domain.Values{"x": 0},
		To:   domain.Values{"x": 100},
		Done: func(ok bool) { finished.Store(ok) },
	})
	c.Start(nil)
	c.Stop(true)

	assert.True(t, finished.Load())
	assert.Equal(t, 100.0, c.Values()["x"])
}

func TestController_DelayPostponesStart(t *testing.T) {
	c := fastController(1)
	defer c.Destroy()

	c.Update(domain.Payload{
		From:  domain.Values{"x": 0},
		To:    domain.Values{"x": 1},
		Delay: 100 * time.Millisecond,
	})
	c.Start(nil)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0.0, c.Values()["x"], "nothing moves during the delay")

	require.Eventually(t, c.Idle, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, c.Values()["x"])
}

func TestController_UpdateMidFlightRetargets(t *testing.T) {
	c := fastController(1)
	defer c.Destroy()

	c.Update(domain.Payload{From: domain.Values{"x": 0}, To: domain.Values{"x": 100}})
	c.Start(nil)

	time.Sleep(20 * time.Millisecond)
	c.Update(domain.Payload{To: domain.Values{"x": 0}})

	require.Eventually(t, c.Idle, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 0.0, c.Values()["x"], "loop follows the latest goal")
}

func TestController_DestroyDiscardsCallbacks(t *testing.T) {
	c := fastController(1)

	var called atomic.Bool
	c.Update(domain.Payload{
		From: domain.Values{"x": 0},
		To:   domain.Values{"x": 1},
		Done: func(bool) { called.Store(true) },
	})
	c.Start(nil)
	c.Destroy()

	time.Sleep(20 * time.Millisecond)
	assert.False(t, called.Load(), "destroy fires nothing")
	assert.True(t, c.Idle())
}
