// Package commands contains business operations that modify system state.
// Every handler follows the same pattern: validate the command, run the
// change inside a unit of work, store the produced events in the outbox in
// the same transaction, commit, then hand the events to the publisher.
package commands

import (
	"context"

	"parcelhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	ManifestRepoFactory interface {
		ManifestRepository() ports.ManifestRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// ShipmentUoW covers operations touching a single shipment and its events.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		OutboxRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// UoW covers the manifest operations, which move a manifest and a batch
	// of shipments atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   shipments, err := uow.ShipmentRepository().GetMany(ctx, ids)
	//   // ... mutate, Update, ManifestRepository().Add, OutboxRepository().Add
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		ManifestRepoFactory
		OutboxRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// shipmentLockKey names the distributed lock serializing transitions of one shipment.
func shipmentLockKey(id string) string {
	return "lock:shipment:" + id
}
