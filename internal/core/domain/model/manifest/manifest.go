// Package manifest provides the Manifest aggregate: a batch of shipments
// travelling together from one branch to another in a single trip.
//
// A manifest is created InTransit and mutated exactly once, when the
// destination branch receives it and it becomes Completed.
package manifest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrShipmentsAreRequired     = errs.NewValueIsRequiredError("shipmentIDs")
	ErrManifestIsNotConstructed = errors.New("Manifest must be created via NewManifest or RestoreManifest constructor")
)

// Status is the manifest lifecycle state.
type Status string

const (
	InTransit Status = "InTransit"
	Completed Status = "Completed"
)

func (s Status) Validate() error {
	if s != InTransit && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid manifest status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Meta describes the trip.
type Meta struct {
	VehicleNumber string
	DriverName    string
}

type Manifest struct {
	id           kernel.UUID
	fromBranch   kernel.UUID
	toBranch     kernel.UUID
	shipmentIDs  []kernel.UUID
	status       Status
	meta         Meta
	dispatchedAt time.Time
	receivedAt   *time.Time
	createdBy    kernel.UUID
	version      int

	guard guard.ConstructorGuard
}

// NewManifest creates an InTransit manifest dispatched at now.
// shipmentIDs must be non-empty and free of duplicates.
func NewManifest(
	id kernel.UUID,
	fromBranch kernel.UUID,
	toBranch kernel.UUID,
	shipmentIDs []kernel.UUID,
	meta Meta,
	createdBy kernel.UUID,
	now time.Time,
) (*Manifest, error) {
	m := &Manifest{
		status:       InTransit,
		dispatchedAt: now.UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setRoute(fromBranch, toBranch),
		m.setShipments(shipmentIDs),
		m.setMeta(meta),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	m.createdBy = createdBy

	return m, nil
}

// RestoreManifest rebuilds a manifest from storage.
func RestoreManifest(
	id kernel.UUID,
	fromBranch kernel.UUID,
	toBranch kernel.UUID,
	shipmentIDs []kernel.UUID,
	status Status,
	meta Meta,
	dispatchedAt time.Time,
	receivedAt *time.Time,
	createdBy kernel.UUID,
	version int,
) (*Manifest, error) {
	m := &Manifest{
		meta:         meta,
		dispatchedAt: dispatchedAt.UTC(),
		version:      version,
		createdBy:    createdBy,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setRoute(fromBranch, toBranch),
		m.setShipments(shipmentIDs),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if (status == Completed) != (receivedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("receivedAt",
			fmt.Errorf("receivedAt does not match status %s", status))
	}

	m.status = status
	if receivedAt != nil {
		at := receivedAt.UTC()
		m.receivedAt = &at
	}
	return m, nil
}

func (m *Manifest) Validate() error {
	if m == nil {
		return ErrManifestIsNotConstructed
	}
	return m.guard.Validate(ErrManifestIsNotConstructed)
}

func (m *Manifest) ID() kernel.UUID         { return m.id }
func (m *Manifest) FromBranch() kernel.UUID { return m.fromBranch }
func (m *Manifest) ToBranch() kernel.UUID   { return m.toBranch }
func (m *Manifest) Status() Status          { return m.status }
func (m *Manifest) Meta() Meta              { return m.meta }
func (m *Manifest) DispatchedAt() time.Time { return m.dispatchedAt }
func (m *Manifest) CreatedBy() kernel.UUID  { return m.createdBy }
func (m *Manifest) Version() int            { return m.version }

func (m *Manifest) ShipmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), m.shipmentIDs...)
}

// ReceivedAt is nil until the manifest is completed.
func (m *Manifest) ReceivedAt() *time.Time {
	if m.receivedAt == nil {
		return nil
	}
	at := *m.receivedAt
	return &at
}

// Receive completes the manifest. A completed manifest cannot be received again.
func (m *Manifest) Receive(now time.Time) error {
	if m.status != InTransit {
		return errs.NewConflictError("manifest "+m.id.String(), "is already "+string(m.status))
	}
	at := now.UTC()
	m.status = Completed
	m.receivedAt = &at
	return nil
}

func (m *Manifest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Manifest) setRoute(from, to kernel.UUID) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}
	if from.IsEqual(to) {
		return errs.NewValueIsInvalidErrorWithCause("toBranch", errors.New("destination branch must differ from origin branch"))
	}
	m.fromBranch = from
	m.toBranch = to
	return nil
}

func (m *Manifest) setShipments(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrShipmentsAreRequired
	}
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("shipmentIDs", fmt.Errorf("duplicate shipment %s", id))
		}
		seen[id] = struct{}{}
	}
	m.shipmentIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

func (m *Manifest) setMeta(meta Meta) error {
	meta.VehicleNumber = strings.TrimSpace(meta.VehicleNumber)
	meta.DriverName = strings.TrimSpace(meta.DriverName)
	if err := errors.Join(
		requireText("vehicleNumber", meta.VehicleNumber),
		requireText("driverName", meta.DriverName),
	); err != nil {
		return err
	}
	m.meta = meta
	return nil
}

func requireText(name, v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
