package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrReceiveManifestCommandIsNotConstructed = errors.New(
	"ReceiveManifestCommand must be created via NewReceiveManifestCommand constructor",
)

type ReceiveManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewReceiveManifestCommand(manifestID kernel.UUID, actor kernel.Actor) (ReceiveManifestCommand, error) {
	if err := errors.Join(manifestID.Validate(), actor.Validate()); err != nil {
		return ReceiveManifestCommand{}, err
	}
	return ReceiveManifestCommand{
		manifestID: manifestID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReceiveManifestCommand) Validate() error {
	return c.guard.Validate(ErrReceiveManifestCommandIsNotConstructed)
}

func (c ReceiveManifestCommand) ManifestID() kernel.UUID { return c.manifestID }
func (c ReceiveManifestCommand) Actor() kernel.Actor     { return c.actor }
