package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrTrackingIDIsRequired = errs.NewValueIsRequiredError("trackingID")
)

// CreateShipmentCommand registers a new shipment at the actor's branch.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID        kernel.UUID
	actor             kernel.Actor
	trackingID        string
	destinationBranch kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	actor kernel.Actor,
	trackingID string,
	destinationBranch kernel.UUID,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		actor.Validate(),
		cmd.setTrackingID(trackingID),
		destinationBranch.Validate(),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	cmd.shipmentID = shipmentID
	cmd.actor = actor
	cmd.destinationBranch = destinationBranch
	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID        { return c.shipmentID }
func (c CreateShipmentCommand) Actor() kernel.Actor            { return c.actor }
func (c CreateShipmentCommand) TrackingID() string             { return c.trackingID }
func (c CreateShipmentCommand) DestinationBranch() kernel.UUID { return c.destinationBranch }

func (c *CreateShipmentCommand) setTrackingID(trackingID string) error {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return ErrTrackingIDIsRequired
	}
	c.trackingID = trackingID
	return nil
}
