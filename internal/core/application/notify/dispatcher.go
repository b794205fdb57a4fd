package notify

import (
	"context"
	"fmt"
	"log/slog"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/logger"
	"parcelhub/internal/pkg/metrics"
)

// Dispatcher routes events to their registered handler.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

func NewDispatcher(registry *Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		logger:   log.With("component", "dispatcher"),
	}
}

// Dispatch runs the handler for e. Failures and panics are logged and
// swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, e event.Event) {
	if err := d.Process(ctx, e); err != nil {
		d.logger.ErrorContext(ctx, "dispatch event",
			logger.EventID(e.ID.String()), logger.EventKind(e.Kind.String()), logger.Error(err))
	}
}

// Process is Dispatch for callers that track the outcome, such as the
// outbox. A panicking handler is reported as an error.
func (d *Dispatcher) Process(ctx context.Context, e event.Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler for %s panicked: %v", e.Kind, rec)
		}
		metrics.EventsDispatchedTotal.WithLabelValues(e.Kind.String(), metrics.Result(err)).Inc()
	}()

	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid event %s: %w", e.ID, err)
	}

	handler, err := d.registry.Lookup(e.Kind)
	if err != nil {
		return err
	}
	return handler(ctx, e)
}

// NewNotifyHandler builds the handler that files in-app notifications for
// the event audience and then pushes to it. Push never fails the handler.
// A redelivered event whose rows are all stored already is not pushed again.
func NewNotifyHandler(
	directory ports.UserDirectory,
	resolver services.AudienceResolver,
	writer *Writer,
	push *PushService,
	log *slog.Logger,
) Handler {
	log = log.With("component", "notify")

	return func(ctx context.Context, e event.Event) error {
		managers, err := directory.ListManagers(ctx, resolver.Branches(e))
		if err != nil {
			return fmt.Errorf("load managers: %w", err)
		}

		audience := resolver.Resolve(e, managers)
		if audience.IsEmpty() {
			log.DebugContext(ctx, "event has no audience", logger.EventID(e.ID.String()))
			return nil
		}

		written, err := writer.Append(ctx, e, audience)
		if err != nil {
			return err
		}
		if written == 0 {
			log.InfoContext(ctx, "event already notified, skipping push", logger.EventID(e.ID.String()))
			return nil
		}
		log.InfoContext(ctx, "notifications written",
			logger.EventID(e.ID.String()),
			logger.EventKind(e.Kind.String()),
			slog.Int("count", written))

		push.Deliver(ctx, e, audience)
		return nil
	}
}

// RegisterNotifyHandler binds handler to every event kind.
func RegisterNotifyHandler(registry *Registry, handler Handler) error {
	for _, kind := range event.Kinds() {
		if err := registry.Register(kind, handler); err != nil {
			return err
		}
	}
	return nil
}
