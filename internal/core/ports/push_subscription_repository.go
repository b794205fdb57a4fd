package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
)

type PushSubscriptionRepository interface {
	// Upsert stores the subscription, replacing the keys of an existing
	// (user, endpoint) pair.
	Upsert(ctx context.Context, subscription *notification.PushSubscription) error

	ListByUser(ctx context.Context, tenantID, userID kernel.UUID) ([]*notification.PushSubscription, error)

	// Delete removes one subscription. Deleting a missing row is not an error.
	Delete(ctx context.Context, tenantID, id kernel.UUID) error

	// DeleteByEndpoint removes the user's subscription for endpoint.
	DeleteByEndpoint(ctx context.Context, tenantID, userID kernel.UUID, endpoint string) error
}
