package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrSubscribePushCommandIsNotConstructed = errors.New(
		"SubscribePushCommand must be created via NewSubscribePushCommand constructor",
	)
	ErrUnsubscribePushCommandIsNotConstructed = errors.New(
		"UnsubscribePushCommand must be created via NewUnsubscribePushCommand constructor",
	)
)

// SubscribePushCommand registers a web push endpoint for the actor.
type SubscribePushCommand struct { //nolint:recvcheck //using for validation
	subscription *notification.PushSubscription

	guard guard.ConstructorGuard
}

func NewSubscribePushCommand(actor kernel.Actor, endpoint, authKey, p256dhKey string) (SubscribePushCommand, error) {
	if err := actor.Validate(); err != nil {
		return SubscribePushCommand{}, err
	}
	sub, err := notification.NewPushSubscription(kernel.NewUUID(), actor.TenantID(), actor.UserID(), endpoint, authKey, p256dhKey)
	if err != nil {
		return SubscribePushCommand{}, err
	}
	return SubscribePushCommand{subscription: sub, guard: guard.NewConstructorGuard()}, nil
}

func (c SubscribePushCommand) Validate() error {
	return c.guard.Validate(ErrSubscribePushCommandIsNotConstructed)
}

func (c SubscribePushCommand) Subscription() *notification.PushSubscription { return c.subscription }

// UnsubscribePushCommand removes one of the actor's endpoints.
type UnsubscribePushCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	endpoint string

	guard guard.ConstructorGuard
}

func NewUnsubscribePushCommand(actor kernel.Actor, endpoint string) (UnsubscribePushCommand, error) {
	endpoint = strings.TrimSpace(endpoint)
	var endpointErr error
	if endpoint == "" {
		endpointErr = notification.ErrEndpointIsRequired
	}
	if err := errors.Join(actor.Validate(), endpointErr); err != nil {
		return UnsubscribePushCommand{}, err
	}
	return UnsubscribePushCommand{actor: actor, endpoint: endpoint, guard: guard.NewConstructorGuard()}, nil
}

func (c UnsubscribePushCommand) Validate() error {
	return c.guard.Validate(ErrUnsubscribePushCommandIsNotConstructed)
}

func (c UnsubscribePushCommand) Actor() kernel.Actor { return c.actor }
func (c UnsubscribePushCommand) Endpoint() string    { return c.endpoint }
