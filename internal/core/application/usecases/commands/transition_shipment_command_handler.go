package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/metrics"
)

// TransitionShipmentCommandHandler applies a direct shipment transition.
//
// The whole read-modify-write runs under a per-shipment distributed lock, and
// the repository additionally rejects the update if the stored version moved,
// so two requests racing on the same shipment can never interleave their
// history entries.
type TransitionShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	locker     ports.Locker
	directory  ports.UserDirectory
	publisher  ports.EventPublisher
	validator  services.TransitionValidator
}

func NewTransitionShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	locker ports.Locker,
	directory ports.UserDirectory,
	publisher ports.EventPublisher,
	validatorOpts ...services.ValidatorOption,
) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		directory:  directory,
		publisher:  publisher,
		validator:  services.NewTransitionValidator(validatorOpts...),
	}
}

func (h TransitionShipmentCommandHandler) Handle(ctx context.Context, cmd TransitionShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var emitted []event.Event
	err := h.locker.WithLock(ctx, shipmentLockKey(cmd.ShipmentID().String()), func(ctx context.Context) error {
		var err error
		emitted, err = h.transition(ctx, cmd)
		return err
	})
	if err != nil {
		return err
	}

	metrics.ShipmentTransitionsTotal.WithLabelValues(cmd.Target().String()).Inc()
	h.publisher.Publish(ctx, emitted...)
	return nil
}

func (h TransitionShipmentCommandHandler) transition(ctx context.Context, cmd TransitionShipmentCommand) ([]event.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if _, err = h.validator.Authorize(s, cmd.Target(), cmd.Actor(), cmd.Input()); err != nil {
		return nil, err
	}
	if cmd.Target() == shipment.Assigned && cmd.Input().AssigneeID != nil {
		if err = h.checkAssignee(ctx, s, *cmd.Input().AssigneeID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	if err = h.validator.Transition(s, cmd.Target(), cmd.Actor(), cmd.Input(), now); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, s); err != nil {
		return nil, err
	}

	var emitted []event.Event
	if kind, ok := event.KindForStatus(cmd.Target()); ok {
		emitted = append(emitted, event.ForShipment(kind, s, now))
		if err = uow.OutboxRepository().Add(ctx, emitted...); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return emitted, nil
}

// checkAssignee requires the named assignee to be staff of the branch holding the shipment.
func (h TransitionShipmentCommandHandler) checkAssignee(ctx context.Context, s *shipment.Shipment, assigneeID kernel.UUID) error {
	assignee, err := h.directory.Get(ctx, assigneeID)
	if err != nil {
		return err
	}
	if assignee.Role() != kernel.RoleStaff || !assignee.TenantID().IsEqual(s.CurrentBranch()) {
		return errs.NewForbiddenError("assignee is not staff of the branch holding the shipment")
	}
	return nil
}
