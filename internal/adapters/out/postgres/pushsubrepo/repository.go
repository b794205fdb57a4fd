package pushsubrepo

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPushSubscriptionRepository implements ports.PushSubscriptionRepository using GORM.
type GormPushSubscriptionRepository struct {
	db *gorm.DB
}

func NewGormPushSubscriptionRepository(db *gorm.DB) *GormPushSubscriptionRepository {
	return &GormPushSubscriptionRepository{db: db}
}

func (r *GormPushSubscriptionRepository) Upsert(ctx context.Context, subscription *notification.PushSubscription) error {
	if err := subscription.Validate(); err != nil {
		return err
	}

	dto := fromDomain(subscription, time.Now().UTC())
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"tenant_id", "auth_key", "p256dh_key", "updated_at"}),
	}).Create(&dto).Error
}

func (r *GormPushSubscriptionRepository) ListByUser(
	ctx context.Context,
	tenantID kernel.UUID,
	userID kernel.UUID,
) ([]*notification.PushSubscription, error) {
	var dtos []PushSubscriptionDTO
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID.Bytes(), userID.Bytes()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	subs := make([]*notification.PushSubscription, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func (r *GormPushSubscriptionRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).
		Delete(&PushSubscriptionDTO{}).Error
}

func (r *GormPushSubscriptionRepository) DeleteByEndpoint(
	ctx context.Context,
	tenantID kernel.UUID,
	userID kernel.UUID,
	endpoint string,
) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND endpoint = ?", tenantID.Bytes(), userID.Bytes(), endpoint).
		Delete(&PushSubscriptionDTO{}).Error
}
