package notificationrepo

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// AddBatch writes all rows in a single INSERT. Rows whose (event, recipient)
// pair is already stored are skipped and left out of the returned count.
func (r *GormNotificationRepository) AddBatch(ctx context.Context, notifications []*notification.Notification) (int64, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			return 0, err
		}
		dtos = append(dtos, fromDomain(n))
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&dtos)
	return result.RowsAffected, result.Error
}

func (r *GormNotificationRepository) List(
	ctx context.Context,
	tenantID kernel.UUID,
	userID kernel.UUID,
	filter ports.NotificationFilter,
) ([]*notification.Notification, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := max(filter.Offset, 0)

	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID.Bytes(), userID.Bytes())
	if filter.Read != nil {
		query = query.Where("is_read = ?", *filter.Read)
	}

	var dtos []NotificationDTO
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *GormNotificationRepository) CountUnread(ctx context.Context, tenantID, userID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("tenant_id = ? AND user_id = ? AND is_read = ?", tenantID.Bytes(), userID.Bytes(), false).
		Count(&count).Error
	return count, err
}

// MarkRead only touches unread rows, so the returned count is the number of
// notifications that actually changed.
func (r *GormNotificationRepository) MarkRead(
	ctx context.Context,
	tenantID kernel.UUID,
	userID kernel.UUID,
	ids []kernel.UUID,
) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("tenant_id = ? AND user_id = ? AND is_read = ?", tenantID.Bytes(), userID.Bytes(), false)

	if len(ids) > 0 {
		raw := make([]uuid.UUID, 0, len(ids))
		for _, id := range ids {
			raw = append(raw, id.Bytes())
		}
		query = query.Where("id IN ?", raw)
	}

	result := query.Updates(map[string]any{
		"is_read":    true,
		"updated_at": time.Now().UTC(),
	})
	return result.RowsAffected, result.Error
}
