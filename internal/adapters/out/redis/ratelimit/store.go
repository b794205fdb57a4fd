// Package ratelimit implements fixed-window request counting in redis, so
// every instance of the service shares the same budget per client.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

var ErrInvalidLimit = errors.New("rate limit and window must be positive")

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type RedisStore struct {
	client redis.Cmdable
	now    func() time.Time
}

type Option func(*RedisStore)

// WithClock replaces time.Now for window bucketing.
func WithClock(now func() time.Time) Option {
	return func(s *RedisStore) { s.now = now }
}

func NewRedisStore(client redis.Cmdable, opts ...Option) *RedisStore {
	s := &RedisStore{client: client, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow counts one hit for key in the current window. Counters live under
// ratelimit:<key>:<window start> and expire with their window.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 || window <= 0 {
		return Decision{}, ErrInvalidLimit
	}

	now := s.now()
	windowStart := now.Truncate(window)
	bucket := fmt.Sprintf("%s%s:%d", keyPrefix, key, windowStart.UnixMilli())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	pipe.PExpire(ctx, bucket, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	count := int(incr.Val())
	d := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
	}
	if !d.Allowed {
		d.RetryAfter = windowStart.Add(window).Sub(now)
	}
	return d, nil
}
