package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateManifestCommandIsNotConstructed = errors.New(
	"CreateManifestCommand must be created via NewCreateManifestCommand constructor",
)

// CreateManifestCommand dispatches a batch of shipments from the actor's
// branch to toBranch.
type CreateManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID  kernel.UUID
	actor       kernel.Actor
	toBranch    kernel.UUID
	shipmentIDs []kernel.UUID
	meta        manifest.Meta

	guard guard.ConstructorGuard
}

func NewCreateManifestCommand(
	manifestID kernel.UUID,
	actor kernel.Actor,
	toBranch kernel.UUID,
	shipmentIDs []kernel.UUID,
	meta manifest.Meta,
) (CreateManifestCommand, error) {
	var idsErr error
	if len(shipmentIDs) == 0 {
		idsErr = manifest.ErrShipmentsAreRequired
	}
	if err := errors.Join(
		manifestID.Validate(),
		actor.Validate(),
		toBranch.Validate(),
		idsErr,
	); err != nil {
		return CreateManifestCommand{}, err
	}

	return CreateManifestCommand{
		manifestID:  manifestID,
		actor:       actor,
		toBranch:    toBranch,
		shipmentIDs: append([]kernel.UUID(nil), shipmentIDs...),
		meta:        meta,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateManifestCommand) Validate() error {
	return c.guard.Validate(ErrCreateManifestCommandIsNotConstructed)
}

func (c CreateManifestCommand) ManifestID() kernel.UUID    { return c.manifestID }
func (c CreateManifestCommand) Actor() kernel.Actor        { return c.actor }
func (c CreateManifestCommand) ToBranch() kernel.UUID      { return c.toBranch }
func (c CreateManifestCommand) ShipmentIDs() []kernel.UUID { return append([]kernel.UUID(nil), c.shipmentIDs...) }
func (c CreateManifestCommand) Meta() manifest.Meta        { return c.meta }
