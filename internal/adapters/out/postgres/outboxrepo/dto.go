// Package outboxrepo stores domain events next to the state change that
// produced them and tracks their dispatch through PENDING, PROCESSING,
// PUBLISHED and FAILED.
package outboxrepo

import (
	"time"

	"github.com/google/uuid"
)

type OutboxEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType   string    `gorm:"type:varchar(64);not null"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	Status      string    `gorm:"type:varchar(16);not null;index:idx_outbox_status_updated,priority:1"`
	Attempts    int       `gorm:"type:int;not null;default:0"`
	LastError   string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null;index:idx_outbox_status_updated,priority:2"`
	PublishedAt *time.Time
}

func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}
