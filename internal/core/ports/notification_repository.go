package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
)

// NotificationFilter narrows a feed read. Read nil means both read and unread.
type NotificationFilter struct {
	Read   *bool
	Limit  int
	Offset int
}

// NotificationRepository persists the in-app feed. Every read and write is
// scoped by both tenant and user.
type NotificationRepository interface {
	// AddBatch inserts all notifications in one statement and returns how many
	// were stored. A notification for an (event, recipient) pair that already
	// has one is skipped.
	AddBatch(ctx context.Context, notifications []*notification.Notification) (int64, error)

	// List returns the user's notifications, newest first.
	List(ctx context.Context, tenantID, userID kernel.UUID, filter NotificationFilter) ([]*notification.Notification, error)

	CountUnread(ctx context.Context, tenantID, userID kernel.UUID) (int64, error)

	// MarkRead flags the given notifications as read and returns how many changed.
	// An empty ids slice marks every unread notification of the user.
	MarkRead(ctx context.Context, tenantID, userID kernel.UUID, ids []kernel.UUID) (int64, error)
}
