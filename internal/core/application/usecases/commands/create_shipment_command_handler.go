package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/ports"
)

// CreateShipmentCommandHandler creates a shipment at the actor's branch and
// emits ShipmentCreated.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	actor := cmd.Actor()
	s, err := shipment.NewShipment(cmd.ShipmentID(), cmd.TrackingID(), actor.TenantID(), cmd.DestinationBranch(), actor.UserID(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	created := event.ForShipment(event.ShipmentCreated, s, now)
	if err = uow.OutboxRepository().Add(ctx, created); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, created)
	return nil
}
