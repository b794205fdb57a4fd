// Package errs provides standardized error types for parcelhub.
//
// Validation errors (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) and ObjectNotFoundError follow one pattern: a
// sentinel, a struct carrying details, constructors with and without cause,
// and an Unwrap returning the sentinel.
//
// The domain taxonomy adds ErrInvalidTransition, ErrForbidden and ErrConflict,
// which the API layer maps to 4xx responses, and the delivery kinds
// ErrTransientDelivery / ErrPermanentDelivery, which stay inside the
// notification pipeline.
package errs
