// Package notify turns committed domain events into notifications. The
// Dispatcher routes each event to its handler; the notify handler resolves
// the audience, files one in-app notification per recipient through the
// Writer, then fans out web push through the PushService.
//
// Events reach the Dispatcher either from the Publisher right after a
// command commits, or from the outbox relay for events that were left
// behind by a crash or a failed attempt.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/metrics"
)

// Writer is the only producer of in-app notifications.
type Writer struct {
	repo ports.NotificationRepository
	now  func() time.Time
}

func NewWriter(repo ports.NotificationRepository) *Writer {
	return &Writer{repo: repo, now: time.Now}
}

// Append stores one unread notification per recipient in a single batch
// and returns how many were written. Recipients that already hold a row for
// e are skipped, so a redelivered event writes nothing.
func (w *Writer) Append(ctx context.Context, e event.Event, audience services.Audience) (int, error) {
	if audience.IsEmpty() {
		return 0, nil
	}

	message := notification.Render(e).Body
	now := w.now().UTC()

	batch := make([]*notification.Notification, 0, audience.Len())
	for _, r := range audience.Recipients() {
		n, err := notification.NewNotification(kernel.NewUUID(), r.TenantID, r.UserID, e, message, now)
		if err != nil {
			return 0, fmt.Errorf("build notification for %s: %w", r.UserID, err)
		}
		batch = append(batch, n)
	}

	written, err := w.repo.AddBatch(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("store notifications: %w", err)
	}

	metrics.NotificationsWrittenTotal.WithLabelValues(e.Kind.String()).Add(float64(written))
	return int(written), nil
}

// List returns the user's feed, newest first. Both identifiers are mandatory.
func (w *Writer) List(
	ctx context.Context,
	tenantID, userID kernel.UUID,
	filter ports.NotificationFilter,
) ([]*notification.Notification, error) {
	if err := errors.Join(tenantID.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	return w.repo.List(ctx, tenantID, userID, filter)
}

func (w *Writer) CountUnread(ctx context.Context, tenantID, userID kernel.UUID) (int64, error) {
	if err := errors.Join(tenantID.Validate(), userID.Validate()); err != nil {
		return 0, err
	}
	return w.repo.CountUnread(ctx, tenantID, userID)
}
