// Package event defines the domain events emitted by shipment and manifest
// state changes, and their JSON wire form used by the outbox.
//
// Identifiers are kernel.UUID everywhere inside the core. The wire form
// carries them as strings; Decode is the single place where they are parsed
// back, so consumers never see a raw string identifier.
package event

import (
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"
)

// Kind enumerates the event types. The string value is persisted as the
// notification event type.
type Kind string

const (
	ShipmentCreated    Kind = "ShipmentCreated"
	ManifestCreated    Kind = "ManifestCreated"
	ManifestDispatched Kind = "ManifestDispatched"
	ManifestArrived    Kind = "ManifestArrived"
	DeliveryAssigned   Kind = "DeliveryAssigned"
	OutForDelivery     Kind = "OutForDelivery"
	Delivered          Kind = "Delivered"
	DeliveryFailed     Kind = "DeliveryFailed"
)

// Kinds returns every kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		ShipmentCreated, ManifestCreated, ManifestDispatched, ManifestArrived,
		DeliveryAssigned, OutForDelivery, Delivered, DeliveryFailed,
	}
}

func (k Kind) Validate() error {
	for _, known := range Kinds() {
		if k == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("event kind", fmt.Errorf("%q is not a known event kind", string(k)))
}

func (k Kind) String() string {
	return string(k)
}

// KindForStatus maps the target of a direct shipment transition to the event
// it emits. Unassign (back to AtDestinationBranch) emits nothing.
func KindForStatus(s shipment.Status) (Kind, bool) {
	//nolint:exhaustive // only delivery transitions emit events
	switch s {
	case shipment.Assigned:
		return DeliveryAssigned, true
	case shipment.OutForDelivery:
		return OutForDelivery, true
	case shipment.Delivered:
		return Delivered, true
	case shipment.Failed:
		return DeliveryFailed, true
	default:
		return "", false
	}
}

// Event is an immutable fact about a committed state change.
type Event struct {
	ID              kernel.UUID
	Kind            Kind
	TenantID        kernel.UUID
	ShipmentID      *kernel.UUID
	ManifestID      *kernel.UUID
	TrackingID      string
	FromBranch      *kernel.UUID
	ToBranch        *kernel.UUID
	AssignedStaffID *kernel.UUID
	Status          string
	OccurredAt      time.Time
}

// ForShipment builds a shipment event. The tenant is the branch currently
// holding the shipment.
func ForShipment(kind Kind, s *shipment.Shipment, at time.Time) Event {
	id := s.ID()
	origin := s.OriginBranch()
	destination := s.DestinationBranch()
	return Event{
		ID:              kernel.NewUUID(),
		Kind:            kind,
		TenantID:        s.CurrentBranch(),
		ShipmentID:      &id,
		TrackingID:      s.TrackingID(),
		FromBranch:      &origin,
		ToBranch:        &destination,
		AssignedStaffID: s.AssignedStaff(),
		Status:          s.Status().String(),
		OccurredAt:      at.UTC(),
	}
}

// ForManifest builds a manifest event. Manifests have no tracking id of
// their own, so the manifest id stands in for it. The tenant is the
// dispatching branch.
func ForManifest(kind Kind, m *manifest.Manifest, at time.Time) Event {
	id := m.ID()
	from := m.FromBranch()
	to := m.ToBranch()
	return Event{
		ID:         kernel.NewUUID(),
		Kind:       kind,
		TenantID:   from,
		ManifestID: &id,
		TrackingID: id.String(),
		FromBranch: &from,
		ToBranch:   &to,
		Status:     m.Status().String(),
		OccurredAt: at.UTC(),
	}
}

// AggregateID returns the shipment or manifest the event is about.
func (e Event) AggregateID() kernel.UUID {
	if e.ShipmentID != nil {
		return *e.ShipmentID
	}
	if e.ManifestID != nil {
		return *e.ManifestID
	}
	return kernel.UUID{}
}

func (e Event) Validate() error {
	if err := e.ID.Validate(); err != nil {
		return err
	}
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if err := e.TenantID.Validate(); err != nil {
		return err
	}
	if e.ShipmentID == nil && e.ManifestID == nil {
		return errs.NewValueIsRequiredError("shipmentID or manifestID")
	}
	return nil
}
