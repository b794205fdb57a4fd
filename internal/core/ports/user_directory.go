package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
)

// UserDirectory is the core's view of users, branches and roles.
type UserDirectory interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// ListManagers returns admin and dispatcher users of the given branches.
	ListManagers(ctx context.Context, tenantIDs []kernel.UUID) ([]*user.User, error)

	// Sync records a verified identity seen at the edge.
	Sync(ctx context.Context, u *user.User) error
}
