package commands

import (
	"context"

	"parcelhub/internal/core/ports"
)

type MarkNotificationsReadCommandHandler struct {
	notifications ports.NotificationRepository
}

func NewMarkNotificationsReadCommandHandler(notifications ports.NotificationRepository) MarkNotificationsReadCommandHandler {
	return MarkNotificationsReadCommandHandler{notifications: notifications}
}

// Handle returns the number of notifications that changed from unread to read.
func (h MarkNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationsReadCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	actor := cmd.Actor()
	return h.notifications.MarkRead(ctx, actor.TenantID(), actor.UserID(), cmd.IDs())
}
