package credential

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLockout = LockoutConfig{MaxAttempts: 3, Window: time.Minute, Duration: 5 * time.Minute}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryLockout(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewMemoryLockout(testLockout, clock.now)
	id := uuid.New()

	for i := 0; i < 2; i++ {
		locked, err := l.RecordFailure(ctx, id)
		require.NoError(t, err)
		assert.False(t, locked)
	}
	locked, err := l.IsLocked(ctx, id)
	require.NoError(t, err)
	assert.False(t, locked)

	locked, err = l.RecordFailure(ctx, id)
	require.NoError(t, err)
	assert.True(t, locked)

	locked, _ = l.IsLocked(ctx, id)
	assert.True(t, locked)

	clock.advance(5 * time.Minute)
	locked, _ = l.IsLocked(ctx, id)
	assert.False(t, locked)
}

func TestMemoryLockout_WindowExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewMemoryLockout(testLockout, clock.now)
	id := uuid.New()

	_, _ = l.RecordFailure(ctx, id)
	_, _ = l.RecordFailure(ctx, id)
	clock.advance(time.Minute)

	locked, err := l.RecordFailure(ctx, id)
	require.NoError(t, err)
	assert.False(t, locked, "failures outside the window must not count")
}

func TestMemoryLockout_ResetClearsFailures(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLockout(testLockout, nil)
	id := uuid.New()

	_, _ = l.RecordFailure(ctx, id)
	_, _ = l.RecordFailure(ctx, id)
	require.NoError(t, l.Reset(ctx, id))

	locked, err := l.RecordFailure(ctx, id)
	require.NoError(t, err)
	assert.False(t, locked)
}

func newRedisLockout(t *testing.T) (*RedisLockout, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLockout(client, testLockout), mr
}

func TestRedisLockout(t *testing.T) {
	ctx := context.Background()
	l, mr := newRedisLockout(t)
	id := uuid.New()

	for i := 0; i < 2; i++ {
		locked, err := l.RecordFailure(ctx, id)
		require.NoError(t, err)
		assert.False(t, locked)
	}
	assert.Equal(t, time.Minute, mr.TTL(l.failKey(id)))

	locked, err := l.RecordFailure(ctx, id)
	require.NoError(t, err)
	assert.True(t, locked)
	assert.False(t, mr.Exists(l.failKey(id)))

	locked, err = l.IsLocked(ctx, id)
	require.NoError(t, err)
	assert.True(t, locked)

	mr.FastForward(5 * time.Minute)
	locked, err = l.IsLocked(ctx, id)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRedisLockout_WindowExpires(t *testing.T) {
	ctx := context.Background()
	l, mr := newRedisLockout(t)
	id := uuid.New()

	_, _ = l.RecordFailure(ctx, id)
	_, _ = l.RecordFailure(ctx, id)
	mr.FastForward(time.Minute)

	locked, err := l.RecordFailure(ctx, id)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRedisLockout_Reset(t *testing.T) {
	ctx := context.Background()
	l, mr := newRedisLockout(t)
	id := uuid.New()

	_, _ = l.RecordFailure(ctx, id)
	require.NoError(t, l.Reset(ctx, id))
	assert.False(t, mr.Exists(l.failKey(id)))
}

func TestRedisLockout_Unavailable(t *testing.T) {
	ctx := context.Background()
	l, mr := newRedisLockout(t)
	mr.Close()

	_, err := l.IsLocked(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrLockoutUnavailable)

	_, err = l.RecordFailure(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrLockoutUnavailable)

	assert.ErrorIs(t, l.Reset(ctx, uuid.New()), ErrLockoutUnavailable)
}
