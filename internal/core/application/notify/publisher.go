package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/logger"
)

const (
	defaultPublishTimeout = 30 * time.Second
	defaultMaxAttempts    = 5
	settleTimeout         = 5 * time.Second
)

// Publisher dispatches freshly committed outbox events in the background.
// Each event is claimed first, so a concurrent relay run never handles it
// twice. Events the publisher cannot finish stay in the outbox for the relay.
type Publisher struct {
	outbox      ports.OutboxRepository
	dispatcher  *Dispatcher
	maxAttempts int
	timeout     time.Duration
	logger      *slog.Logger

	wg sync.WaitGroup
}

func NewPublisher(
	outbox ports.OutboxRepository,
	dispatcher *Dispatcher,
	maxAttempts int,
	timeout time.Duration,
	log *slog.Logger,
) *Publisher {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Publisher{
		outbox:      outbox,
		dispatcher:  dispatcher,
		maxAttempts: maxAttempts,
		timeout:     timeout,
		logger:      log.With("component", "publisher"),
	}
}

// Publish returns immediately. The work outlives the caller's context
// but is bounded by the publisher timeout.
func (p *Publisher) Publish(ctx context.Context, events ...event.Event) {
	if len(events) == 0 {
		return
	}

	detached := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ctx, cancel := context.WithTimeout(detached, p.timeout)
		defer cancel()

		for _, e := range events {
			p.publish(ctx, e)
		}
	}()
}

// Wait blocks until every background publish has finished.
func (p *Publisher) Wait() {
	p.wg.Wait()
}

func (p *Publisher) publish(ctx context.Context, e event.Event) {
	claimed, err := p.outbox.Claim(ctx, e.ID)
	if err != nil {
		p.logger.WarnContext(ctx, "claim outbox event, leaving it to the relay",
			logger.EventID(e.ID.String()), logger.Error(err))
		return
	}
	if !claimed {
		return
	}

	settle(ctx, p.outbox, p.logger, e.ID, p.dispatcher.Process(ctx, e), p.maxAttempts)
}

// settle records the outcome of one dispatch attempt in the outbox. It runs
// on its own deadline, so a dispatch that used up ctx is still recorded.
func settle(
	ctx context.Context,
	outbox ports.OutboxRepository,
	log *slog.Logger,
	id kernel.UUID,
	dispatchErr error,
	maxAttempts int,
) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()

	if dispatchErr == nil {
		if err := outbox.MarkPublished(ctx, id); err != nil {
			log.ErrorContext(ctx, "mark outbox event published", logger.EventID(id.String()), logger.Error(err))
		}
		return
	}

	log.WarnContext(ctx, "dispatch failed", logger.EventID(id.String()), logger.Error(dispatchErr))
	if err := outbox.MarkFailed(ctx, id, dispatchErr, maxAttempts); err != nil {
		log.ErrorContext(ctx, "mark outbox event failed", logger.EventID(id.String()), logger.Error(err))
	}
}
