package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Domain error kinds. Command handlers return errors wrapping exactly one of
// these (or ErrObjectNotFound); the HTTP layer maps them to 4xx responses.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")

	// Delivery kinds never leave the notification pipeline.
	ErrTransientDelivery = errors.New("transient delivery failure")
	ErrPermanentDelivery = errors.New("permanent delivery failure")
)

// InvalidTransitionError reports a (from, to, role) combination the state machine does not allow.
type InvalidTransitionError struct {
	From   string
	To     string
	Role   string
	Reason string
}

func NewInvalidTransitionError(from, to fmt.Stringer, role string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String(), Role: role}
}

// NewInvalidTransitionErrorWithReason is used when the pair itself is legal
// but the entity cannot take it, e.g. a shipment routed elsewhere.
func NewInvalidTransitionErrorWithReason(from, to fmt.Stringer, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String(), Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
	if e.Role != "" {
		msg = fmt.Sprintf("%s for role %s", msg, e.Role)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError reports an actor acting outside its tenant, role or assignment.
type ForbiddenError struct {
	Reason string
}

func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConflictError reports a write that lost against concurrent or prior state.
type ConflictError struct {
	Resource string
	Reason   string
}

func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConflict, e.Resource, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// DeliveryError is returned by push senders. Permanent means the endpoint is gone.
type DeliveryError struct {
	Endpoint   string
	StatusCode int
	Permanent  bool
	Cause      error
}

func NewTransientDeliveryError(endpoint string, statusCode int, cause error) *DeliveryError {
	return &DeliveryError{Endpoint: endpoint, StatusCode: statusCode, Cause: cause}
}

func NewPermanentDeliveryError(endpoint string, statusCode int) *DeliveryError {
	return &DeliveryError{Endpoint: endpoint, StatusCode: statusCode, Permanent: true}
}

func (e *DeliveryError) Error() string {
	kind := ErrTransientDelivery
	if e.Permanent {
		kind = ErrPermanentDelivery
	}
	msg := fmt.Sprintf("%s: endpoint %s", kind, sanitize(e.Endpoint))
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s, status %d", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *DeliveryError) Unwrap() []error {
	kind := ErrTransientDelivery
	if e.Permanent {
		kind = ErrPermanentDelivery
	}
	if e.Cause == nil {
		return []error{kind}
	}
	return []error{kind, e.Cause}
}

// Rejection pairs an offending identifier with the reason it was rejected.
type Rejection struct {
	ID     string
	Reason error
}

// RejectedError aggregates per-item precondition failures of a batch operation.
// errors.Is matches any of the wrapped reasons.
type RejectedError struct {
	Resource   string
	Rejections []Rejection
}

func NewRejectedError(resource string, rejections []Rejection) *RejectedError {
	return &RejectedError{Resource: resource, Rejections: rejections}
}

func (e *RejectedError) Error() string {
	parts := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		parts = append(parts, fmt.Sprintf("%s: %v", r.ID, r.Reason))
	}
	return fmt.Sprintf("%d %s rejected: %s", len(e.Rejections), e.Resource, strings.Join(parts, "; "))
}

func (e *RejectedError) Unwrap() []error {
	out := make([]error, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		out = append(out, r.Reason)
	}
	return out
}

// IDs returns the offending identifiers in rejection order.
func (e *RejectedError) IDs() []string {
	ids := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		ids = append(ids, r.ID)
	}
	return ids
}
