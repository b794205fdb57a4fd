// Package services provides domain services whose rules span more than one
// aggregate or depend on who is acting.
//
// The package includes:
//   - TransitionValidator: enforces the shipment state machine per actor role
//     and authority, then applies the transition to the aggregate
//   - AudienceResolver: turns a domain event and a directory snapshot into the
//     deduplicated set of users to notify
//
// Both services are pure: they read and mutate only what they are handed and
// never touch storage.
package services
