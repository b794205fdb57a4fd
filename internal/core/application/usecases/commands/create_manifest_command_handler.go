package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/metrics"
)

// CreateManifestCommandHandler creates a manifest and moves every listed
// shipment onto it in one transaction.
//
// Every shipment must exist, originate at the actor's branch, be routed to
// the manifest's destination, sit AtOriginBranch and not already travel on an
// open manifest. All failing shipments are reported together in one
// *errs.RejectedError and nothing is written.
//
// Example:
//
//	cmd, _ := NewCreateManifestCommand(kernel.NewUUID(), actor, toBranch, ids, meta)
//	err := handler.Handle(ctx, cmd)
//	var rejected *errs.RejectedError
//	if errors.As(err, &rejected) {
//	    log.Printf("rejected shipments: %v", rejected.IDs())
//	}
type CreateManifestCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewCreateManifestCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CreateManifestCommandHandler {
	return CreateManifestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h CreateManifestCommandHandler) Handle(ctx context.Context, cmd CreateManifestCommand) (*manifest.Manifest, error) {
	m, emitted, err := h.handle(ctx, cmd)
	metrics.ManifestOperationsTotal.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, emitted...)
	return m, nil
}

func (h CreateManifestCommandHandler) handle(ctx context.Context, cmd CreateManifestCommand) (*manifest.Manifest, []event.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	actor := cmd.Actor()
	m, err := manifest.NewManifest(cmd.ManifestID(), actor.TenantID(), cmd.ToBranch(), cmd.ShipmentIDs(), cmd.Meta(), actor.UserID(), now)
	if err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	shipments, err := shipmentRepo.GetMany(ctx, m.ShipmentIDs())
	if err != nil {
		return nil, nil, err
	}

	open, err := uow.ManifestRepository().OpenManifestsOf(ctx, m.ShipmentIDs())
	if err != nil {
		return nil, nil, err
	}

	if rejections := checkDispatchable(m, actor, shipments, open); len(rejections) > 0 {
		return nil, nil, errs.NewRejectedError("shipments", rejections)
	}

	for _, s := range shipments {
		if err = s.Dispatch(m.ID(), actor.UserID(), now); err != nil {
			return nil, nil, err
		}
		if err = shipmentRepo.Update(ctx, s); err != nil {
			return nil, nil, err
		}
	}

	if err = uow.ManifestRepository().Add(ctx, m); err != nil {
		return nil, nil, err
	}

	emitted := []event.Event{
		event.ForManifest(event.ManifestCreated, m, now),
		event.ForManifest(event.ManifestDispatched, m, now),
	}
	if err = uow.OutboxRepository().Add(ctx, emitted...); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return m, emitted, nil
}

// checkDispatchable returns one rejection per offending shipment, in manifest order.
func checkDispatchable(
	m *manifest.Manifest,
	actor kernel.Actor,
	shipments []*shipment.Shipment,
	open map[kernel.UUID]kernel.UUID,
) []errs.Rejection {
	byID := make(map[kernel.UUID]*shipment.Shipment, len(shipments))
	for _, s := range shipments {
		byID[s.ID()] = s
	}

	var rejections []errs.Rejection
	for _, id := range m.ShipmentIDs() {
		if reason := dispatchRejection(id, byID[id], m, actor, open); reason != nil {
			rejections = append(rejections, errs.Rejection{ID: id.String(), Reason: reason})
		}
	}
	return rejections
}

func dispatchRejection(
	id kernel.UUID,
	s *shipment.Shipment,
	m *manifest.Manifest,
	actor kernel.Actor,
	open map[kernel.UUID]kernel.UUID,
) error {
	switch {
	case s == nil:
		return errs.NewObjectNotFoundError("shipment", id)
	case !s.OriginBranch().IsEqual(actor.TenantID()):
		return errs.NewForbiddenError("shipment belongs to another branch")
	case !s.DestinationBranch().IsEqual(m.ToBranch()):
		return errs.NewInvalidTransitionErrorWithReason(s.Status(), shipment.InTransitToDestination,
			fmt.Sprintf("shipment is routed to %s", s.DestinationBranch()))
	case s.Status() != shipment.AtOriginBranch:
		return errs.NewConflictError("shipment", "is "+s.Status().String())
	}
	if manifestID, ok := open[id]; ok {
		return errs.NewConflictError("shipment", "is already on open manifest "+manifestID.String())
	}
	return nil
}
