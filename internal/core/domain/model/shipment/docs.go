// Package shipment provides the Shipment aggregate root: a package moving from
// an origin branch to a destination branch and then out for last-mile delivery.
//
// The package includes:
//   - Shipment: identity, routing, assignment and the append-only status history
//   - Status: the seven lifecycle states and the set of direct transitions
//   - StatusEntry: one immutable, timestamped line of the audit history
//
// Key business rules:
//   - currentBranch is always the origin or the destination branch
//   - the newest history entry always carries the current status
//   - history entries are only ever prepended, never edited or removed
//   - a staff member is assigned exactly while the shipment is Assigned,
//     OutForDelivery, Delivered or Failed
//   - a failure reason is present exactly when the shipment is Failed
//   - Delivered and Failed are terminal
//
// AtOriginBranch and InTransitToDestination are entered and left only by the
// manifest operations (Dispatch, Receive). Every other move goes through
// Assign, Unassign, StartDelivery, Deliver and Fail, which enforce the status
// table but not who is allowed to call them; actor authority is checked by
// services.TransitionValidator.
package shipment
