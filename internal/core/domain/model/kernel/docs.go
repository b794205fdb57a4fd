// Package kernel holds the shared domain primitives of parcelhub: the UUID
// value object used for every identifier (shipments, manifests, branches,
// users) and the Actor describing who issues a command.
//
// Branches and tenants are the same thing in this domain: a branch owns its
// shipments and its users, and every tenant-scoped read or write is keyed by
// the branch UUID.
package kernel
