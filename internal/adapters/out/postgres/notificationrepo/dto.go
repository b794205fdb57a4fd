// Package notificationrepo persists the in-app notification feed.
package notificationrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is one feed row. The (tenant_id, user_id, is_read) index
// serves both the feed and the unread counter. (event_id, user_id) is unique
// so a redelivered event cannot file a second row for the same recipient.
type NotificationDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_event_recipient,priority:1"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient,priority:1"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient,priority:2;uniqueIndex:idx_notifications_event_recipient,priority:2"`
	IsRead     bool       `gorm:"not null;default:false;index:idx_notifications_recipient,priority:3"`
	EventType  string     `gorm:"type:varchar(64);not null"`
	ShipmentID *uuid.UUID `gorm:"type:uuid"`
	ManifestID *uuid.UUID `gorm:"type:uuid"`
	TrackingID string     `gorm:"type:varchar(64);not null"`
	Message    string     `gorm:"type:text;not null"`
	CreatedAt  time.Time  `gorm:"not null;index"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         n.ID().Bytes(),
		EventID:    n.EventID().Bytes(),
		TenantID:   n.TenantID().Bytes(),
		UserID:     n.RecipientID().Bytes(),
		IsRead:     n.IsRead(),
		EventType:  n.EventType().String(),
		ShipmentID: optionalBytes(n.ShipmentID()),
		ManifestID: optionalBytes(n.ManifestID()),
		TrackingID: n.TrackingID(),
		Message:    n.Message(),
		CreatedAt:  n.CreatedAt(),
		UpdatedAt:  n.UpdatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := optionalUUID(dto.ShipmentID)
	if err != nil {
		return nil, err
	}
	manifestID, err := optionalUUID(dto.ManifestID)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		eventID,
		tenantID,
		userID,
		event.Kind(dto.EventType),
		shipmentID,
		manifestID,
		dto.TrackingID,
		dto.Message,
		dto.IsRead,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
