package shipment

import (
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	AtOriginBranch ──manifest──> InTransitToDestination ──receive──> AtDestinationBranch
//	                                                                   │        ▲
//	                                                                assign   unassign
//	                                                                   ▼        │
//	                                                                  Assigned ─┘
//	                                                                   │
//	                                                                   ▼
//	                                                             OutForDelivery ──> Delivered
//	                                                                   │
//	                                                                   └──────────> Failed
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	AtOriginBranch
	InTransitToDestination
	AtDestinationBranch
	Assigned
	OutForDelivery
	Delivered
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                "Unknown",
		AtOriginBranch:         "AtOriginBranch",
		InTransitToDestination: "InTransitToDestination",
		AtDestinationBranch:    "AtDestinationBranch",
		Assigned:               "Assigned",
		OutForDelivery:         "OutForDelivery",
		Delivered:              "Delivered",
		Failed:                 "Failed",
	}
}

// directTransitions lists the moves reachable through a transition request.
// Manifest-driven moves are not part of it.
func directTransitions() map[Status][]Status {
	//nolint:exhaustive // manifest-driven and terminal states have no direct transitions
	return map[Status][]Status{
		AtDestinationBranch: {Assigned},
		Assigned:            {OutForDelivery, AtDestinationBranch},
		OutForDelivery:      {Delivered, Failed},
	}
}

// StatusFromString parses the persisted or wire name of a status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the seven lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// HasAssignee reports whether a shipment in status s must carry an assigned staff member.
func (s Status) HasAssignee() bool {
	return s == Assigned || s == OutForDelivery || s == Delivered || s == Failed
}

// CanTransitionTo reports whether (s, to) is a direct transition, regardless of actor.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range directTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}
