package runtime_test

import (
	"testing"
	"time"

	"github.com/driftkit/sway/internal/runtime"
	"github.com/driftkit/sway/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leaveFixture runs the common prelude: track items, then drop "b" so its
// transition starts leaving. "a" stays tracked and busy until finished.
func leaveFixture(t *testing.T, mutate func(*runtime.Config[string])) *fixture {
	t.Helper()
	f := newFixture(t, mutate)
	_, err := f.eng.Pass([]string{"a", "b"}, false)
	require.NoError(t, err)
	_, err = f.eng.Pass([]string{"a"}, false)
	require.NoError(t, err)
	require.Equal(t, []domain.Phase{domain.PhaseEnter, domain.PhaseLeave}, phases(f.eng))
	return f
}

func TestExpiry_ImmediateRemoval(t *testing.T) {
	f := leaveFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = 0
	})

	// Finishing the leave animation triggers a coalesced re-evaluation that
	// drops the expired transition on the very next pass.
	f.reg.Get(2).Finish(true)

	assert.Equal(t, []int64{1}, ids(f.eng), "leaver dropped")
	assert.True(t, f.reg.Get(2).Destroyed())
	assert.Zero(t, f.timers.Pending(), "no timer for immediate expiry")
}

func TestExpiry_AllIdleShortCircuits(t *testing.T) {
	f := leaveFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = 5 * time.Second
	})

	// Settle the sibling first so every tracked controller is idle when the
	// leaver completes: removal should not wait for the 5s timer.
	f.reg.Get(1).Finish(true)
	f.reg.Get(2).Finish(true)

	assert.Equal(t, []int64{1}, ids(f.eng))
	assert.Zero(t, f.timers.Pending(), "no reason to schedule while nothing animates")
}

func TestExpiry_TimerWhileSiblingsBusy(t *testing.T) {
	f := leaveFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = 50 * time.Millisecond
	})

	// Sibling "a" is still animating; a dismissal timer must be armed.
	f.reg.Get(2).Finish(true)

	require.Equal(t, 1, f.timers.Pending())
	assert.Equal(t, 2, f.eng.Len(), "leaver stays tracked until the timer fires")

	snap := f.eng.Snapshot()
	require.NotNil(t, snap.Transitions[1].ExpiresBy)

	timers := f.timers.Scheduled()
	assert.Equal(t, 50*time.Millisecond, timers[0].D)
	timers[0].Fire()

	assert.Equal(t, []int64{1}, ids(f.eng), "timer-triggered pass drops the leaver")
	assert.True(t, f.reg.Get(2).Destroyed())
}

func TestExpiry_NeverWithBusySiblings(t *testing.T) {
	f := leaveFixture(t, nil) // Expires defaults to ExpiresNever in the fixture

	f.reg.Get(2).Finish(true)

	assert.Zero(t, f.timers.Pending(), "infinite expiry schedules nothing")
	assert.Equal(t, 2, f.eng.Len(), "leaver tracked indefinitely")

	// Removal rides on whatever external pass happens later.
	_, err := f.eng.Pass([]string{"a"}, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(f.eng))
}

func TestExpiry_TimerCancelledWhenDroppedEarly(t *testing.T) {
	f := leaveFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = time.Minute
	})

	f.reg.Get(2).Finish(true)
	require.Equal(t, 1, f.timers.Pending())

	// An unrelated external pass removes the expired transition first; its
	// pending timer must be cancelled, and firing it later is a no-op.
	_, err := f.eng.Pass([]string{"a"}, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(f.eng))
	assert.Zero(t, f.timers.Pending())

	f.timers.FireAll()
	assert.Equal(t, []int64{1}, ids(f.eng))
}

func TestExpiry_NoResurrectionAfterDrop(t *testing.T) {
	f := leaveFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = 0
	})

	f.reg.Get(2).Finish(true)
	require.Equal(t, []int64{1}, ids(f.eng))

	// An equal item reappearing after the drop gets a brand new transition.
	_, err := f.eng.Pass([]string{"a", "b"}, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(f.eng), "transition ids are never reused")
}

func TestExpiry_UserDoneRunsBeforeRegistration(t *testing.T) {
	var order []string
	f := newFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = 0
		cfg.Leave = domain.Static[string](domain.Target{
			"opacity": 0.0,
			"done":    func(bool) { order = append(order, "user") },
		})
		cfg.Hooks = domain.LifecycleHooks{
			OnExpireScheduled: func(domain.ExpireEvent) { order = append(order, "expire") },
		}
	})

	_, err := f.eng.Pass([]string{"a"}, false)
	require.NoError(t, err)
	_, err = f.eng.Pass([]string{}, false)
	require.NoError(t, err)

	f.reg.Get(1).Finish(true)
	assert.Equal(t, []string{"user", "expire"}, order)
}

func TestExpiry_RegistrationIsIdempotent(t *testing.T) {
	hits := 0
	f := leaveFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = time.Minute
		cfg.Hooks = domain.LifecycleHooks{
			OnExpireScheduled: func(domain.ExpireEvent) { hits++ },
		}
	})

	f.reg.Get(2).Finish(true)
	f.reg.Get(2).Finish(true) // double completion must not double-schedule

	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, f.timers.Pending(), "at most one pending timer per transition")
}

func TestExpiry_HostInvalidateCoalesces(t *testing.T) {
	calls := 0
	f := leaveFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = 0
		cfg.Invalidate = func() { calls++ }
	})

	f.reg.Get(2).Finish(true)
	assert.Equal(t, 1, calls, "host asked to schedule a pass")
	assert.Equal(t, 2, f.eng.Len(), "removal deferred to the host's pass")

	// The host runs the pass; the expired transition goes away.
	_, err := f.eng.Pass([]string{"a"}, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(f.eng))
}

func TestExpiry_EndToEnd(t *testing.T) {
	// Single item in, collection emptied, leave completes with expires=0:
	// the retriggered pass empties the tracked sequence.
	f := newFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = 0
	})

	_, err := f.eng.Pass([]string{"a"}, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.Phase{domain.PhaseEnter}, phases(f.eng))

	changed, err := f.eng.Pass([]string{}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, []domain.Phase{domain.PhaseLeave}, phases(f.eng))
	assert.Equal(t, 1, f.reg.Count(), "no new transitions while emptying")

	f.reg.Get(1).Finish(true)
	assert.Zero(t, f.eng.Len(), "tracked sequence becomes empty")
	assert.True(t, f.reg.Get(1).Destroyed())
}

func TestExpiry_DuplicateChurnKeepsSurvivorID(t *testing.T) {
	// Duplicate items churn under expires=0: finishing the leaver triggers a
	// pass from inside its completion callback. The surviving duplicate keeps
	// its transition, and a later re-add mints a fresh id.
	f := newFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = 0
	})

	_, err := f.eng.Pass([]string{"a", "a"}, false)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, ids(f.eng))

	_, err = f.eng.Pass([]string{"a"}, false)
	require.NoError(t, err)
	require.Equal(t, []domain.Phase{domain.PhaseEnter, domain.PhaseLeave}, phases(f.eng))

	f.reg.Get(2).Finish(true)
	assert.Equal(t, []int64{1}, ids(f.eng), "first duplicate survives the re-entrant pass")
	assert.True(t, f.reg.Get(2).Destroyed())

	_, err = f.eng.Pass([]string{"a", "a"}, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(f.eng), "dropped ids are never reused")
}

func TestClose_CancelsPendingExpiryTimers(t *testing.T) {
	f := leaveFixture(t, func(cfg *runtime.Config[string]) {
		cfg.Expires = time.Minute
	})

	f.reg.Get(2).Finish(true)
	require.Equal(t, 1, f.timers.Pending())

	f.eng.Close()
	assert.Zero(t, f.timers.Pending())

	// A timer racing teardown is a no-op.
	f.timers.FireAll()
}
