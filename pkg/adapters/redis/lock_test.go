package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/driftkit/sway/pkg/adapters/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*redis.Locker, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewLocker(client, "sway:"), mr
}

func TestRedisLocker_LockUnlock(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "group-a", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, unlock)
	assert.True(t, mr.Exists("sway:lock:group-a"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("sway:lock:group-a"))
}

func TestRedisLocker_Contention(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)

	// A second acquisition polls until its context expires.
	ctxTimeout, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctxTimeout, "shared", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock1(ctx))

	unlock2, err := locker.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)
	defer unlock2(ctx)
	assert.True(t, mr.Exists("sway:lock:shared"))
}

func TestRedisLocker_StaleUnlockIsHarmless(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "g", 50*time.Millisecond)
	require.NoError(t, err)

	// Simulate TTL expiry and takeover by another holder.
	mr.FastForward(time.Second)
	unlock2, err := locker.Lock(ctx, "g", 5*time.Second)
	require.NoError(t, err)
	defer unlock2(ctx)

	// The stale unlock must not release the new holder's lock.
	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("sway:lock:g"))
}
