// Package pushsubrepo persists web push subscriptions.
package pushsubrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// PushSubscriptionDTO is unique per (user, endpoint); re-subscribing the same
// browser replaces its keys.
type PushSubscriptionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_push_subscriptions_user_endpoint,priority:1"`
	Endpoint  string    `gorm:"type:text;not null;uniqueIndex:idx_push_subscriptions_user_endpoint,priority:2"`
	AuthKey   string    `gorm:"type:text;not null"`
	P256dhKey string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (PushSubscriptionDTO) TableName() string {
	return "push_subscriptions"
}

func fromDomain(s *notification.PushSubscription, now time.Time) PushSubscriptionDTO {
	return PushSubscriptionDTO{
		ID:        s.ID().Bytes(),
		TenantID:  s.TenantID().Bytes(),
		UserID:    s.UserID().Bytes(),
		Endpoint:  s.Endpoint(),
		AuthKey:   s.AuthKey(),
		P256dhKey: s.P256dhKey(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toDomain(dto PushSubscriptionDTO) (*notification.PushSubscription, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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
	return notification.NewPushSubscription(id, tenantID, userID, dto.Endpoint, dto.AuthKey, dto.P256dhKey)
}
