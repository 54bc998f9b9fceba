package credential

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLockout keeps lockout counters in Redis so they are shared across
// service instances.
type RedisLockout struct {
	redis  redis.UniversalClient
	cfg    LockoutConfig
	prefix string
}

var _ Lockout = (*RedisLockout)(nil)

// NewRedisLockout creates a RedisLockout.
func NewRedisLockout(client redis.UniversalClient, cfg LockoutConfig) *RedisLockout {
	return &RedisLockout{redis: client, cfg: cfg, prefix: "identity:lockout:"}
}

func (l *RedisLockout) failKey(id uuid.UUID) string { return l.prefix + "fail:" + id.String() }
func (l *RedisLockout) lockKey(id uuid.UUID) string { return l.prefix + "lock:" + id.String() }

func (l *RedisLockout) IsLocked(ctx context.Context, accountID uuid.UUID) (bool, error) {
	n, err := l.redis.Exists(ctx, l.lockKey(accountID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return n > 0, nil
}

func (l *RedisLockout) RecordFailure(ctx context.Context, accountID uuid.UUID) (bool, error) {
	key := l.failKey(accountID)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	if count == 1 {
		// The first failure opens the counting window.
		if err := l.redis.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
			return false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
		}
	}

	if count < int64(l.cfg.MaxAttempts) {
		return false, nil
	}

	_, err = l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, l.lockKey(accountID), 1, l.cfg.Duration)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return true, nil
}

func (l *RedisLockout) Reset(ctx context.Context, accountID uuid.UUID) error {
	if err := l.redis.Del(ctx, l.failKey(accountID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return nil
}
