package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

const (
	DefaultRelaySchedule = "*/15 * * * * *"

	relayLockKey = "lock:outbox-relay"
	relayTimeout = time.Minute
)

// Relayer re-dispatches stale outbox events.
type Relayer interface {
	RelayOnce(ctx context.Context) (int, error)
}

// OutboxRelayJob periodically hands stale outbox events back to the
// dispatcher. With a locker, only one instance relays at a time.
type OutboxRelayJob struct {
	relayer  Relayer
	locker   ports.Locker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob uses DefaultRelaySchedule for an empty schedule. locker may be nil.
func NewOutboxRelayJob(relayer Relayer, locker ports.Locker, schedule string, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	return &OutboxRelayJob{
		relayer:  relayer,
		locker:   locker,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run performs one relay pass.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	relay := func(ctx context.Context) error {
		_, err := j.relayer.RelayOnce(ctx)
		return err
	}

	var err error
	if j.locker != nil {
		err = j.locker.WithLock(ctx, relayLockKey, relay)
		// another instance is relaying
		if errors.Is(err, errs.ErrConflict) {
			return
		}
	} else {
		err = relay(ctx)
	}

	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
	}
}

func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
