package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGuard(t *testing.T) (*SubmitGuard, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewSubmitGuard(rdb, time.Minute), mr
}

func TestSubmitGuard_ExclusiveUntilReleased(t *testing.T) {
	guard, mr := setupGuard(t)
	ctx := context.Background()

	release, ok, err := guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("submit:session-1"))

	_, ok, err = guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = guard.Acquire(ctx, "session-2")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("submit:session-1"))

	_, ok, err = guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmitGuard_ExpiredLockIsNotStolenBack(t *testing.T) {
	guard, mr := setupGuard(t)
	ctx := context.Background()

	release, ok, err := guard.Acquire(ctx, "s")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok, err = guard.Acquire(ctx, "s")
	require.NoError(t, err)
	require.True(t, ok)

	// the first holder's release must not free the second holder's lock
	require.NoError(t, release(ctx))
	assert.True(t, mr.Exists("submit:s"))
}

func TestSubmitGuard_DefaultTTL(t *testing.T) {
	guard, mr := setupGuard(t)
	guard = NewSubmitGuard(guard.client, 0)

	_, ok, err := guard.Acquire(context.Background(), "s")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2*time.Minute, mr.TTL("submit:s"))
}
