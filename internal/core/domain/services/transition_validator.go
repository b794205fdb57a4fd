package services

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"
)

// ErrAssigneeIsRequired is returned when a branch manager assigns a shipment without naming the staff member.
var ErrAssigneeIsRequired = errs.NewValueIsRequiredError("assigneeID")

// TransitionInput carries the optional data of a transition request.
type TransitionInput struct {
	Note          string
	FailureReason string
	Proof         string
	// AssigneeID is the staff member to assign. Staff assigning themselves may leave it nil.
	AssigneeID *kernel.UUID
}

type transitionKey struct {
	from shipment.Status
	to   shipment.Status
}

// TransitionValidator is the gatekeeper for direct shipment transitions.
//
// Transition table (from -> to: roles):
//
//	AtDestinationBranch -> Assigned:            admin, dispatcher, staff (self only)
//	Assigned            -> OutForDelivery:      staff (assignee)
//	Assigned            -> AtDestinationBranch: admin, dispatcher
//	OutForDelivery      -> Delivered, Failed:   staff (assignee)
//
// A pair missing from the table, or a role not listed for it, is an
// InvalidTransition. A listed role acting without authority is Forbidden:
// managers must have created the shipment or manage the branch currently
// holding it (only the former under WithCreatorOnlyAuthority), staff must be
// the assignee.
type TransitionValidator struct {
	creatorOnly bool
}

// ValidatorOption configures a TransitionValidator.
type ValidatorOption func(*TransitionValidator)

// WithCreatorOnlyAuthority restricts admins and dispatchers to the shipments
// they created.
func WithCreatorOnlyAuthority() ValidatorOption {
	return func(v *TransitionValidator) {
		v.creatorOnly = true
	}
}

func NewTransitionValidator(opts ...ValidatorOption) TransitionValidator {
	var v TransitionValidator
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

func allowedRoles() map[transitionKey][]kernel.Role {
	managers := []kernel.Role{kernel.RoleAdmin, kernel.RoleDispatcher}
	staff := []kernel.Role{kernel.RoleStaff}
	return map[transitionKey][]kernel.Role{
		{shipment.AtDestinationBranch, shipment.Assigned}: {kernel.RoleAdmin, kernel.RoleDispatcher, kernel.RoleStaff},
		{shipment.Assigned, shipment.OutForDelivery}:      staff,
		{shipment.Assigned, shipment.AtDestinationBranch}: managers,
		{shipment.OutForDelivery, shipment.Delivered}:     staff,
		{shipment.OutForDelivery, shipment.Failed}:        staff,
	}
}

// Authorize checks the request against the table and the actor's authority
// without touching the shipment. It returns the staff member to assign when
// the target is Assigned.
func (v TransitionValidator) Authorize(
	s *shipment.Shipment,
	to shipment.Status,
	actor kernel.Actor,
	in TransitionInput,
) (kernel.UUID, error) {
	if err := s.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := actor.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := to.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	from := s.Status()
	if !roleAllowed(allowedRoles()[transitionKey{from, to}], actor.Role()) {
		return kernel.UUID{}, errs.NewInvalidTransitionError(from, to, actor.Role().String())
	}

	if actor.Role().ManagesBranch() {
		return v.authorizeManager(s, to, actor, in)
	}
	return v.authorizeStaff(s, to, actor, in)
}

// Transition authorizes the request and applies it to s.
func (v TransitionValidator) Transition(
	s *shipment.Shipment,
	to shipment.Status,
	actor kernel.Actor,
	in TransitionInput,
	now time.Time,
) error {
	assignee, err := v.Authorize(s, to, actor, in)
	if err != nil {
		return err
	}

	by := actor.UserID()
	//nolint:exhaustive // Authorize rejects every other target
	switch to {
	case shipment.Assigned:
		return s.Assign(assignee, by, in.Note, now)
	case shipment.AtDestinationBranch:
		return s.Unassign(by, in.Note, now)
	case shipment.OutForDelivery:
		return s.StartDelivery(by, in.Note, now)
	case shipment.Delivered:
		return s.Deliver(by, in.Note, in.Proof, now)
	case shipment.Failed:
		return s.Fail(by, in.Note, in.FailureReason, now)
	default:
		return errs.NewInvalidTransitionError(s.Status(), to, actor.Role().String())
	}
}

func (v TransitionValidator) authorizeManager(
	s *shipment.Shipment,
	to shipment.Status,
	actor kernel.Actor,
	in TransitionInput,
) (kernel.UUID, error) {
	if !s.CreatedBy().IsEqual(actor.UserID()) {
		if v.creatorOnly {
			return kernel.UUID{}, errs.NewForbiddenError("actor did not create the shipment")
		}
		if !s.CurrentBranch().IsEqual(actor.TenantID()) {
			return kernel.UUID{}, errs.NewForbiddenError("actor neither created the shipment nor manages its current branch")
		}
	}
	if to != shipment.Assigned {
		return kernel.UUID{}, nil
	}
	if in.AssigneeID == nil {
		return kernel.UUID{}, ErrAssigneeIsRequired
	}
	if err := in.AssigneeID.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	return *in.AssigneeID, nil
}

func (v TransitionValidator) authorizeStaff(
	s *shipment.Shipment,
	to shipment.Status,
	actor kernel.Actor,
	in TransitionInput,
) (kernel.UUID, error) {
	if to != shipment.Assigned {
		if !s.IsAssignedTo(actor.UserID()) {
			return kernel.UUID{}, errs.NewForbiddenError("actor is not the assignee")
		}
		return kernel.UUID{}, nil
	}

	if !s.CurrentBranch().IsEqual(actor.TenantID()) {
		return kernel.UUID{}, errs.NewForbiddenError("shipment is held by another branch")
	}
	if in.AssigneeID != nil && !in.AssigneeID.IsEqual(actor.UserID()) {
		return kernel.UUID{}, errs.NewForbiddenError("staff may only assign shipments to themselves")
	}
	return actor.UserID(), nil
}

func roleAllowed(roles []kernel.Role, role kernel.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
