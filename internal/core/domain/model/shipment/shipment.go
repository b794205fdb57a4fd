package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

const maxTrackingIDLength = 64

// Domain errors for shipment operations.
var (
	// ErrTrackingIDIsRequired is returned when creating a shipment without a tracking id.
	ErrTrackingIDIsRequired = errs.NewValueIsRequiredError("trackingID")
	// ErrFailureReasonIsRequired is returned when a delivery is failed without a reason.
	ErrFailureReasonIsRequired = errs.NewValueIsRequiredError("failureReason")
	// ErrShipmentIsNotConstructed is returned when using an improperly initialized Shipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")
)

// Shipment is the aggregate root for a single package.
//
// Invariants:
//   - currentBranch is either originBranch or destinationBranch
//   - originBranch differs from destinationBranch
//   - history is non-empty, newest-first, and history[0].Status() == status
//   - assignedStaff is set iff status.HasAssignee()
//   - failureReason is non-empty iff status == Failed
//
// version is the persisted optimistic-concurrency counter; repositories
// compare it on update and reject the write when another writer got there
// first.
type Shipment struct {
	id                kernel.UUID
	trackingID        string
	originBranch      kernel.UUID
	destinationBranch kernel.UUID
	currentBranch     kernel.UUID
	status            Status
	history           []StatusEntry
	assignedStaff     *kernel.UUID
	failureReason     string
	deliveryProof     string
	createdBy         kernel.UUID
	version           int
	createdAt         time.Time
	updatedAt         time.Time

	// persistedHistory is the number of entries that were loaded from storage.
	persistedHistory int

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment sitting at its origin branch with a single
// "shipment created" history entry attributed to createdBy.
func NewShipment(
	id kernel.UUID,
	trackingID string,
	originBranch kernel.UUID,
	destinationBranch kernel.UUID,
	createdBy kernel.UUID,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:    AtOriginBranch,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingID(trackingID),
		s.setBranches(originBranch, destinationBranch, originBranch),
		s.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	if err := s.appendEntry(AtOriginBranch, now, "shipment created", &createdBy); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot carries the persisted state of a shipment for RestoreShipment.
// History must be newest-first.
type Snapshot struct {
	ID                kernel.UUID
	TrackingID        string
	OriginBranch      kernel.UUID
	DestinationBranch kernel.UUID
	CurrentBranch     kernel.UUID
	Status            Status
	History           []StatusEntry
	AssignedStaff     *kernel.UUID
	FailureReason     string
	DeliveryProof     string
	CreatedBy         kernel.UUID
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreShipment rebuilds a shipment from storage and re-checks every invariant.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	s := &Shipment{
		deliveryProof: snap.DeliveryProof,
		version:       snap.Version,
		createdAt:     snap.CreatedAt.UTC(),
		updatedAt:     snap.UpdatedAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(snap.ID),
		s.setTrackingID(snap.TrackingID),
		s.setBranches(snap.OriginBranch, snap.DestinationBranch, snap.CurrentBranch),
		s.setCreatedBy(snap.CreatedBy),
		snap.Status.Validate(),
	); err != nil {
		return nil, err
	}

	s.status = snap.Status
	s.assignedStaff = snap.AssignedStaff
	s.failureReason = snap.FailureReason
	s.history = append([]StatusEntry(nil), snap.History...)
	s.persistedHistory = len(s.history)

	if err := s.checkInvariants(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID                { return s.id }
func (s *Shipment) TrackingID() string             { return s.trackingID }
func (s *Shipment) OriginBranch() kernel.UUID      { return s.originBranch }
func (s *Shipment) DestinationBranch() kernel.UUID { return s.destinationBranch }
func (s *Shipment) CurrentBranch() kernel.UUID     { return s.currentBranch }
func (s *Shipment) Status() Status                 { return s.status }
func (s *Shipment) FailureReason() string          { return s.failureReason }
func (s *Shipment) DeliveryProof() string          { return s.deliveryProof }
func (s *Shipment) CreatedBy() kernel.UUID         { return s.createdBy }
func (s *Shipment) Version() int                   { return s.version }
func (s *Shipment) CreatedAt() time.Time           { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time           { return s.updatedAt }

// AssignedStaff returns the assigned staff member, or nil.
func (s *Shipment) AssignedStaff() *kernel.UUID {
	if s.assignedStaff == nil {
		return nil
	}
	id := *s.assignedStaff
	return &id
}

// History returns a copy of the audit history, newest first.
func (s *Shipment) History() []StatusEntry {
	return append([]StatusEntry(nil), s.history...)
}

// NewHistoryEntries returns the entries prepended since the shipment was
// restored (or all of them for a new shipment), newest first.
func (s *Shipment) NewHistoryEntries() []StatusEntry {
	fresh := len(s.history) - s.persistedHistory
	return append([]StatusEntry(nil), s.history[:fresh]...)
}

// IsAssignedTo reports whether userID is the assigned staff member.
func (s *Shipment) IsAssignedTo(userID kernel.UUID) bool {
	return s.assignedStaff != nil && s.assignedStaff.IsEqual(userID)
}

// Dispatch moves the shipment onto a manifest leaving its origin branch.
func (s *Shipment) Dispatch(manifestID kernel.UUID, actorID kernel.UUID, now time.Time) error {
	if s.status != AtOriginBranch {
		return errs.NewConflictError("shipment "+s.id.String(), fmt.Sprintf("is %s, not %s", s.status, AtOriginBranch))
	}
	return s.appendEntry(InTransitToDestination, now, "assigned to manifest "+manifestID.String(), &actorID)
}

// Receive lands the shipment at its destination branch from a manifest.
func (s *Shipment) Receive(manifestID kernel.UUID, actorID kernel.UUID, now time.Time) error {
	if s.status != InTransitToDestination {
		return errs.NewConflictError("shipment "+s.id.String(), fmt.Sprintf("is %s, not %s", s.status, InTransitToDestination))
	}
	s.currentBranch = s.destinationBranch
	return s.appendEntry(AtDestinationBranch, now, "received via manifest "+manifestID.String(), &actorID)
}

// Assign hands the shipment to a staff member for last-mile delivery.
func (s *Shipment) Assign(staffID kernel.UUID, actorID kernel.UUID, note string, now time.Time) error {
	if err := s.checkDirect(Assigned); err != nil {
		return err
	}
	if err := staffID.Validate(); err != nil {
		return err
	}
	s.assignedStaff = &staffID
	return s.appendEntry(Assigned, now, note, &actorID)
}

// Unassign returns an assigned shipment to the destination branch pool.
func (s *Shipment) Unassign(actorID kernel.UUID, note string, now time.Time) error {
	if err := s.checkDirect(AtDestinationBranch); err != nil {
		return err
	}
	s.assignedStaff = nil
	return s.appendEntry(AtDestinationBranch, now, note, &actorID)
}

// StartDelivery marks the shipment as out for delivery.
func (s *Shipment) StartDelivery(actorID kernel.UUID, note string, now time.Time) error {
	if err := s.checkDirect(OutForDelivery); err != nil {
		return err
	}
	return s.appendEntry(OutForDelivery, now, note, &actorID)
}

// Deliver completes the shipment. proof is an optional reference to a delivery proof.
func (s *Shipment) Deliver(actorID kernel.UUID, note, proof string, now time.Time) error {
	if err := s.checkDirect(Delivered); err != nil {
		return err
	}
	s.deliveryProof = strings.TrimSpace(proof)
	return s.appendEntry(Delivered, now, note, &actorID)
}

// Fail records an unsuccessful delivery attempt. reason is mandatory.
func (s *Shipment) Fail(actorID kernel.UUID, note, reason string, now time.Time) error {
	if err := s.checkDirect(Failed); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrFailureReasonIsRequired
	}
	s.failureReason = reason
	return s.appendEntry(Failed, now, note, &actorID)
}

func (s *Shipment) checkDirect(to Status) error {
	if !s.status.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError(s.status, to, "")
	}
	return nil
}

func (s *Shipment) appendEntry(status Status, now time.Time, note string, actorID *kernel.UUID) error {
	entry, err := NewStatusEntry(status, now, note, actorID)
	if err != nil {
		return err
	}
	s.history = append([]StatusEntry{entry}, s.history...)
	s.status = status
	s.updatedAt = entry.Timestamp()
	return nil
}

func (s *Shipment) checkInvariants() error {
	if len(s.history) == 0 {
		return errs.NewValueIsRequiredError("statusHistory")
	}
	if s.history[0].Status() != s.status {
		return errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("newest entry is %s but status is %s", s.history[0].Status(), s.status))
	}
	if s.status.HasAssignee() != (s.assignedStaff != nil) {
		return errs.NewValueIsInvalidErrorWithCause("assignedStaff",
			fmt.Errorf("assignment does not match status %s", s.status))
	}
	if s.assignedStaff != nil {
		if err := s.assignedStaff.Validate(); err != nil {
			return err
		}
	}
	if (s.status == Failed) != (s.failureReason != "") {
		return errs.NewValueIsInvalidErrorWithCause("failureReason",
			fmt.Errorf("failure reason does not match status %s", s.status))
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingID(trackingID string) error {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return ErrTrackingIDIsRequired
	}
	if len(trackingID) > maxTrackingIDLength {
		return errs.NewValueIsOutOfRangeError("trackingID length", len(trackingID), 1, maxTrackingIDLength)
	}
	s.trackingID = trackingID
	return nil
}

func (s *Shipment) setBranches(origin, destination, current kernel.UUID) error {
	if err := errors.Join(origin.Validate(), destination.Validate(), current.Validate()); err != nil {
		return err
	}
	if origin.IsEqual(destination) {
		return errs.NewValueIsInvalidErrorWithCause("destinationBranch",
			errors.New("destination branch must differ from origin branch"))
	}
	if !current.IsEqual(origin) && !current.IsEqual(destination) {
		return errs.NewValueIsInvalidErrorWithCause("currentBranch",
			errors.New("current branch must be the origin or the destination branch"))
	}
	s.originBranch = origin
	s.destinationBranch = destination
	s.currentBranch = current
	return nil
}

func (s *Shipment) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	s.createdBy = createdBy
	return nil
}
