package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/logger"
)

const defaultRelayBatchSize = 100

// RelayConfig tunes the outbox relay. Zero values fall back to defaults.
type RelayConfig struct {
	// StaleAfter is how long an event may stay PENDING, or PROCESSING, before
	// the relay takes it over.
	StaleAfter  time.Duration
	BatchSize   int
	MaxAttempts int
}

// Relay re-dispatches outbox events that the publisher never finished.
type Relay struct {
	outbox     ports.OutboxRepository
	dispatcher *Dispatcher
	cfg        RelayConfig
	now        func() time.Time
	logger     *slog.Logger
}

func NewRelay(outbox ports.OutboxRepository, dispatcher *Dispatcher, cfg RelayConfig, log *slog.Logger) *Relay {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultRelayBatchSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return &Relay{
		outbox:     outbox,
		dispatcher: dispatcher,
		cfg:        cfg,
		now:        time.Now,
		logger:     log.With("component", "relay"),
	}
}

// RelayOnce claims one batch of stale events and dispatches them in order.
// It returns how many events were claimed.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	cutoff := r.now().Add(-r.cfg.StaleAfter)

	messages, err := r.outbox.ClaimStale(ctx, cutoff, cutoff, r.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim stale outbox events: %w", err)
	}

	for _, msg := range messages {
		e, err := event.Decode(msg.Payload)
		if err != nil {
			// A payload that does not decode never will.
			r.logger.ErrorContext(ctx, "malformed outbox payload",
				logger.EventID(msg.ID.String()), logger.Error(err))
			if markErr := r.outbox.MarkFailed(ctx, msg.ID, err, 1); markErr != nil {
				r.logger.ErrorContext(ctx, "mark outbox event failed",
					logger.EventID(msg.ID.String()), logger.Error(markErr))
			}
			continue
		}

		settle(ctx, r.outbox, r.logger, msg.ID, r.dispatcher.Process(ctx, e), r.cfg.MaxAttempts)
	}

	if len(messages) > 0 {
		r.logger.InfoContext(ctx, "outbox relay run", slog.Int("claimed", len(messages)))
	}
	return len(messages), nil
}
