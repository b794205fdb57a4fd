// Package queries contains read operations. Handlers read straight from the
// database with SQL and return flat read models instead of aggregates.
package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery reads one shipment with its history. Only the origin and
// destination branches can see a shipment; to anyone else it does not exist.
type GetShipmentQuery struct {
	shipmentID kernel.UUID
	tenantID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(shipmentID, tenantID kernel.UUID) (GetShipmentQuery, error) {
	if err := errors.Join(shipmentID.Validate(), tenantID.Validate()); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{shipmentID: shipmentID, tenantID: tenantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentResponse is the shipment read model.
type ShipmentResponse struct {
	ID                kernel.UUID
	TrackingID        string
	OriginBranch      kernel.UUID
	DestinationBranch kernel.UUID
	CurrentBranch     kernel.UUID
	Status            string
	AssignedStaff     *kernel.UUID
	FailureReason     string
	DeliveryProof     string
	CreatedBy         kernel.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	History           []StatusEntryResponse
}

// StatusEntryResponse is one history line, newest first in ShipmentResponse.History.
type StatusEntryResponse struct {
	Status    string
	Timestamp time.Time
	Note      string
	ActorID   *kernel.UUID
}
