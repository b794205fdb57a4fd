package commands

import (
	"context"

	"parcelhub/internal/core/ports"
)

type SubscribePushCommandHandler struct {
	subscriptions ports.PushSubscriptionRepository
}

func NewSubscribePushCommandHandler(subscriptions ports.PushSubscriptionRepository) SubscribePushCommandHandler {
	return SubscribePushCommandHandler{subscriptions: subscriptions}
}

func (h SubscribePushCommandHandler) Handle(ctx context.Context, cmd SubscribePushCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.subscriptions.Upsert(ctx, cmd.Subscription())
}

type UnsubscribePushCommandHandler struct {
	subscriptions ports.PushSubscriptionRepository
}

func NewUnsubscribePushCommandHandler(subscriptions ports.PushSubscriptionRepository) UnsubscribePushCommandHandler {
	return UnsubscribePushCommandHandler{subscriptions: subscriptions}
}

func (h UnsubscribePushCommandHandler) Handle(ctx context.Context, cmd UnsubscribePushCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	return h.subscriptions.DeleteByEndpoint(ctx, actor.TenantID(), actor.UserID(), cmd.Endpoint())
}
