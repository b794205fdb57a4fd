package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/metrics"
)

// ReceiveManifestCommandHandler completes an InTransit manifest at its
// destination branch and lands every shipment on it there, in one
// transaction. Receiving a completed manifest again is a Conflict and writes
// nothing.
type ReceiveManifestCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewReceiveManifestCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) ReceiveManifestCommandHandler {
	return ReceiveManifestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h ReceiveManifestCommandHandler) Handle(ctx context.Context, cmd ReceiveManifestCommand) (*manifest.Manifest, error) {
	m, emitted, err := h.handle(ctx, cmd)
	metrics.ManifestOperationsTotal.WithLabelValues("receive", metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, emitted...)
	return m, nil
}

func (h ReceiveManifestCommandHandler) handle(ctx context.Context, cmd ReceiveManifestCommand) (*manifest.Manifest, []event.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	manifestRepo := uow.ManifestRepository()
	m, err := manifestRepo.Get(ctx, cmd.ManifestID())
	if err != nil {
		return nil, nil, err
	}

	if m.Status() != manifest.InTransit {
		return nil, nil, errs.NewConflictError("manifest "+m.ID().String(), "is already "+m.Status().String())
	}
	if !cmd.Actor().TenantID().IsEqual(m.ToBranch()) {
		return nil, nil, errs.NewForbiddenError("only the destination branch can receive a manifest")
	}

	now := time.Now().UTC()
	if err = m.Receive(now); err != nil {
		return nil, nil, err
	}

	shipmentRepo := uow.ShipmentRepository()
	shipments, err := shipmentRepo.GetMany(ctx, m.ShipmentIDs())
	if err != nil {
		return nil, nil, err
	}
	if len(shipments) != len(m.ShipmentIDs()) {
		return nil, nil, errs.NewConflictError("manifest "+m.ID().String(), "references missing shipments")
	}

	for _, s := range shipments {
		if err = s.Receive(m.ID(), cmd.Actor().UserID(), now); err != nil {
			return nil, nil, err
		}
		if err = shipmentRepo.Update(ctx, s); err != nil {
			return nil, nil, err
		}
	}

	if err = manifestRepo.Update(ctx, m); err != nil {
		return nil, nil, err
	}

	emitted := []event.Event{event.ForManifest(event.ManifestArrived, m, now)}
	if err = uow.OutboxRepository().Add(ctx, emitted...); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return m, emitted, nil
}
