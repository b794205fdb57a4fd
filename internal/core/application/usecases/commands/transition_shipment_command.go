package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/guard"
)

var ErrTransitionShipmentCommandIsNotConstructed = errors.New(
	"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
)

// TransitionShipmentCommand requests a direct status change of one shipment.
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	actor      kernel.Actor
	target     shipment.Status
	input      services.TransitionInput

	guard guard.ConstructorGuard
}

func NewTransitionShipmentCommand(
	shipmentID kernel.UUID,
	actor kernel.Actor,
	target shipment.Status,
	input services.TransitionInput,
) (TransitionShipmentCommand, error) {
	if err := errors.Join(
		shipmentID.Validate(),
		actor.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionShipmentCommand{}, err
	}

	input.Note = strings.TrimSpace(input.Note)
	return TransitionShipmentCommand{
		shipmentID: shipmentID,
		actor:      actor,
		target:     target,
		input:      input,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}

func (c TransitionShipmentCommand) ShipmentID() kernel.UUID         { return c.shipmentID }
func (c TransitionShipmentCommand) Actor() kernel.Actor             { return c.actor }
func (c TransitionShipmentCommand) Target() shipment.Status         { return c.target }
func (c TransitionShipmentCommand) Input() services.TransitionInput { return c.input }
