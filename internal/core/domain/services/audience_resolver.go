package services

import (
	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
)

// Recipient is one member of an audience. TenantID is the branch the
// recipient's notification is filed under.
type Recipient struct {
	UserID   kernel.UUID
	TenantID kernel.UUID
}

// Audience is a set of recipients keyed by user id, in insertion order.
type Audience struct {
	recipients []Recipient
	seen       map[kernel.UUID]struct{}
}

func (a *Audience) add(r Recipient) {
	if a.seen == nil {
		a.seen = make(map[kernel.UUID]struct{})
	}
	if _, ok := a.seen[r.UserID]; ok {
		return
	}
	a.seen[r.UserID] = struct{}{}
	a.recipients = append(a.recipients, r)
}

func (a Audience) Recipients() []Recipient {
	return append([]Recipient(nil), a.recipients...)
}

func (a Audience) Len() int {
	return len(a.recipients)
}

func (a Audience) IsEmpty() bool {
	return len(a.recipients) == 0
}

// AudienceResolver decides who hears about an event:
//   - ShipmentCreated, ManifestCreated, ManifestArrived: managers of the event tenant
//   - ManifestDispatched: managers of both the origin and the destination branch
//   - DeliveryAssigned, OutForDelivery, Delivered, DeliveryFailed: managers of
//     the event tenant plus the assigned staff member
//
// Managers are users with the admin or dispatcher role. A user matching more
// than one rule is notified once.
type AudienceResolver struct{}

func NewAudienceResolver() AudienceResolver {
	return AudienceResolver{}
}

// Branches returns the branches whose managers must be loaded to resolve e.
func (r AudienceResolver) Branches(e event.Event) []kernel.UUID {
	branches := []kernel.UUID{e.TenantID}
	if e.Kind != event.ManifestDispatched {
		return branches
	}
	for _, b := range []*kernel.UUID{e.FromBranch, e.ToBranch} {
		if b != nil && !containsUUID(branches, *b) {
			branches = append(branches, *b)
		}
	}
	return branches
}

// Resolve builds the audience of e from a directory snapshot. Users outside
// the relevant branches or without a manager role are ignored, so the
// snapshot may be broader than needed.
func (r AudienceResolver) Resolve(e event.Event, directory []*user.User) Audience {
	var audience Audience

	branches := r.Branches(e)
	for _, u := range directory {
		if u.Validate() != nil {
			continue
		}
		for _, b := range branches {
			if u.ManagesBranch(b) {
				audience.add(Recipient{UserID: u.ID(), TenantID: u.TenantID()})
				break
			}
		}
	}

	if notifiesAssignee(e.Kind) && e.AssignedStaffID != nil && !e.AssignedStaffID.IsZero() {
		audience.add(Recipient{UserID: *e.AssignedStaffID, TenantID: e.TenantID})
	}

	return audience
}

func notifiesAssignee(k event.Kind) bool {
	switch k {
	case event.DeliveryAssigned, event.OutForDelivery, event.Delivered, event.DeliveryFailed:
		return true
	default:
		return false
	}
}

func containsUUID(ids []kernel.UUID, id kernel.UUID) bool {
	for _, x := range ids {
		if x.IsEqual(id) {
			return true
		}
	}
	return false
}
