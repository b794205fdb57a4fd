// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work, and the outbound services (locking, push
// delivery, event publishing) the application layer depends on.
package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates,
// including their status history.
type ShipmentRepository interface {
	// Add persists a new shipment together with its initial history.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists the shipment and appends history entries added since it
	// was loaded. It fails with an errs.ConflictError when the stored version
	// no longer matches aggregate.Version().
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment with its full history, newest first.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetMany retrieves and row-locks the shipments with the given ids for the
	// rest of the transaction. Unknown ids are absent from the result.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error)
}
