package outboxrepo

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxErrorLength = 1024

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *GormOutboxRepository) Add(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	now := r.now()
	dtos := make([]OutboxEventDTO, 0, len(events))
	for _, e := range events {
		payload, err := event.Encode(e)
		if err != nil {
			return err
		}
		dtos = append(dtos, OutboxEventDTO{
			ID:          e.ID.Bytes(),
			AggregateID: e.AggregateID().Bytes(),
			EventType:   e.Kind.String(),
			Payload:     payload,
			Status:      string(ports.OutboxPending),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormOutboxRepository) Claim(ctx context.Context, id kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), string(ports.OutboxPending)).
		Updates(map[string]any{
			"status":     string(ports.OutboxProcessing),
			"updated_at": r.now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ClaimStale picks the oldest stuck messages with FOR UPDATE SKIP LOCKED, so
// relays running on several instances never claim the same row.
func (r *GormOutboxRepository) ClaimStale(
	ctx context.Context,
	pendingBefore time.Time,
	processingBefore time.Time,
	limit int,
) ([]ports.OutboxMessage, error) {
	var rows []struct {
		ID        uuid.UUID
		EventType string
		Payload   []byte
		Attempts  int
	}

	err := r.db.WithContext(ctx).Raw(`
		UPDATE outbox_events
		SET status = ?, updated_at = ?
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE (status = ? AND updated_at < ?)
			   OR (status = ? AND updated_at < ?)
			ORDER BY created_at ASC
			LIMIT ?
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, event_type, payload, attempts
	`,
		string(ports.OutboxProcessing), r.now(),
		string(ports.OutboxPending), pendingBefore.UTC(),
		string(ports.OutboxProcessing), processingBefore.UTC(),
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		messages = append(messages, ports.OutboxMessage{
			ID:        id,
			EventType: row.EventType,
			Payload:   row.Payload,
			Attempts:  row.Attempts,
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID) error {
	now := r.now()
	return r.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"status":       string(ports.OutboxPublished),
			"published_at": now,
			"updated_at":   now,
			"last_error":   "",
		}).Error
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, cause error, maxAttempts int) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength]
	}

	return r.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": msg,
			"updated_at": r.now(),
			"status": gorm.Expr("CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
				maxAttempts, string(ports.OutboxFailed), string(ports.OutboxPending)),
		}).Error
}
