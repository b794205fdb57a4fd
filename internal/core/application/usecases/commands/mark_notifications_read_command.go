package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrMarkNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkNotificationsReadCommand must be created via NewMarkNotificationsReadCommand constructor",
)

// MarkNotificationsReadCommand flags notifications of the actor as read.
// No ids means all of them.
type MarkNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	actor kernel.Actor
	ids   []kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationsReadCommand(actor kernel.Actor, ids []kernel.UUID) (MarkNotificationsReadCommand, error) {
	errList := []error{actor.Validate()}
	for _, id := range ids {
		errList = append(errList, id.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return MarkNotificationsReadCommand{}, err
	}

	return MarkNotificationsReadCommand{
		actor: actor,
		ids:   append([]kernel.UUID(nil), ids...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationsReadCommandIsNotConstructed)
}

func (c MarkNotificationsReadCommand) Actor() kernel.Actor { return c.actor }
func (c MarkNotificationsReadCommand) IDs() []kernel.UUID  { return append([]kernel.UUID(nil), c.ids...) }
