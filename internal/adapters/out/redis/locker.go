package redis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/logger"
)

type LockOptions struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

func DefaultLockOptions() LockOptions {
	return LockOptions{
		Expiry:     10 * time.Second,
		Tries:      3,
		RetryDelay: 100 * time.Millisecond,
	}
}

// Locker implements ports.Locker on top of redsync.
type Locker struct {
	rs     *redsync.Redsync
	opts   LockOptions
	logger *slog.Logger
}

func NewLocker(client *redis.Client, opts LockOptions, log *slog.Logger) *Locker {
	return &Locker{
		rs:     redsync.New(goredis.NewPool(client)),
		opts:   opts,
		logger: log.With("component", "locker"),
	}
}

// WithLock runs fn while holding key. Failing to acquire the lock is a
// conflict; the acquisition error stays in the chain. The lock is extended
// every half expiry for as long as fn runs.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", errs.NewConflictError(key, "is held by another operation"), err)
	}

	defer func() {
		if ok, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil || !ok {
			l.logger.WarnContext(ctx, "release lock", slog.String("key", key), logger.Error(err))
		}
	}()

	stop := l.keepAlive(ctx, mutex, key)
	defer stop()

	return fn(ctx)
}

// keepAlive extends mutex until the returned stop func is called.
func (l *Locker) keepAlive(ctx context.Context, mutex *redsync.Mutex, key string) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(l.opts.Expiry / 2)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ok, err := mutex.ExtendContext(ctx); err != nil || !ok {
					l.logger.WarnContext(ctx, "extend lock", slog.String("key", key), logger.Error(err))
				}
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}
