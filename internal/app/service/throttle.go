package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopsync/internal/common"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle limits repeated failed login attempts per account.
type LoginThrottle interface {
	// Allow returns common.ErrTooManyRequests once the failure budget for the
	// key is spent.
	Allow(ctx context.Context, key string) error
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type redisLoginThrottle struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLoginThrottle(rdb *redis.Client, limit int, window time.Duration) LoginThrottle {
	return &redisLoginThrottle{rdb: rdb, limit: limit, window: window}
}

func throttleKey(key string) string {
	return "login_attempts:" + key
}

func (t *redisLoginThrottle) Allow(ctx context.Context, key string) error {
	count, err := t.rdb.Get(ctx, throttleKey(key)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		// Redis being down must not lock everyone out.
		return nil
	}
	if count >= t.limit {
		return fmt.Errorf("too many failed login attempts, try again later: %w", common.ErrTooManyRequests)
	}
	return nil
}

func (t *redisLoginThrottle) RecordFailure(ctx context.Context, key string) error {
	count, err := t.rdb.Incr(ctx, throttleKey(key)).Result()
	if err != nil {
		return fmt.Errorf("redisLoginThrottle.RecordFailure: %w", err)
	}
	if count == 1 {
		// First failure starts the window.
		if err := t.rdb.Expire(ctx, throttleKey(key), t.window).Err(); err != nil {
			return fmt.Errorf("redisLoginThrottle.RecordFailure expire: %w", err)
		}
	}
	return nil
}

func (t *redisLoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.rdb.Del(ctx, throttleKey(key)).Err(); err != nil {
		return fmt.Errorf("redisLoginThrottle.Reset: %w", err)
	}
	return nil
}
