package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/notification"
)

// Locker serializes work on a key across every running instance.
type Locker interface {
	// WithLock runs fn while holding the lock for key. It fails with an
	// errs.ConflictError when the lock cannot be acquired.
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// PushSender delivers one payload to one subscription. Failures are
// *errs.DeliveryError values; Permanent ones mean the endpoint is gone.
type PushSender interface {
	Send(ctx context.Context, subscription *notification.PushSubscription, payload []byte) error
}

// EventPublisher hands committed events to the notification pipeline
// without waiting for delivery.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.Event)
}
