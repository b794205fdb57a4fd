package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/logger"
	"parcelhub/internal/pkg/metrics"
)

const defaultPushConcurrency = 8

// PushPayload is the JSON document handed to the push provider.
type PushPayload struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	URL   string      `json:"url"`
	Data  PayloadData `json:"data"`
}

type PayloadData struct {
	ShipmentID string `json:"shipmentId,omitempty"`
	ManifestID string `json:"manifestId,omitempty"`
	TrackingID string `json:"trackingId"`
	Status     string `json:"status"`
	EventType  string `json:"eventType"`
}

// NewPushPayload renders e with the same templates as the in-app feed.
func NewPushPayload(e event.Event) PushPayload {
	msg := notification.Render(e)
	p := PushPayload{
		Title: msg.Title,
		Body:  msg.Body,
		URL:   msg.URL,
		Data: PayloadData{
			TrackingID: e.TrackingID,
			Status:     e.Status,
			EventType:  e.Kind.String(),
		},
	}
	if e.ShipmentID != nil {
		p.Data.ShipmentID = e.ShipmentID.String()
	}
	if e.ManifestID != nil {
		p.Data.ManifestID = e.ManifestID.String()
	}
	return p
}

// PushService delivers web push to every subscription of an audience. It
// never returns delivery failures: gone endpoints are deleted, everything
// else is logged and dropped.
type PushService struct {
	subs        ports.PushSubscriptionRepository
	sender      ports.PushSender
	concurrency int
	logger      *slog.Logger
}

// NewPushService returns a disabled service when sender is nil.
func NewPushService(
	subs ports.PushSubscriptionRepository,
	sender ports.PushSender,
	concurrency int,
	log *slog.Logger,
) *PushService {
	if concurrency <= 0 {
		concurrency = defaultPushConcurrency
	}
	return &PushService{
		subs:        subs,
		sender:      sender,
		concurrency: concurrency,
		logger:      log.With("component", "push"),
	}
}

func (s *PushService) Enabled() bool {
	return s != nil && s.sender != nil
}

// Deliver pushes e to the audience concurrently and waits for every attempt.
func (s *PushService) Deliver(ctx context.Context, e event.Event, audience services.Audience) {
	if !s.Enabled() || audience.IsEmpty() {
		return
	}

	payload, err := json.Marshal(NewPushPayload(e))
	if err != nil {
		s.logger.ErrorContext(ctx, "encode push payload", logger.EventID(e.ID.String()), logger.Error(err))
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, r := range audience.Recipients() {
		g.Go(func() error {
			s.deliverTo(gctx, r, payload)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *PushService) deliverTo(ctx context.Context, r services.Recipient, payload []byte) {
	subs, err := s.subs.ListByUser(ctx, r.TenantID, r.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "list push subscriptions",
			logger.UserID(r.UserID.String()), logger.Error(err))
		return
	}

	for _, sub := range subs {
		err := s.sender.Send(ctx, sub, payload)
		switch {
		case err == nil:
			metrics.PushDeliveriesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
		case errors.Is(err, errs.ErrPermanentDelivery):
			metrics.PushDeliveriesTotal.WithLabelValues(metrics.ResultGone).Inc()
			if delErr := s.subs.Delete(ctx, sub.TenantID(), sub.ID()); delErr != nil {
				s.logger.WarnContext(ctx, "delete gone push subscription",
					logger.UserID(r.UserID.String()), logger.Error(delErr))
				continue
			}
			s.logger.InfoContext(ctx, "push subscription removed",
				logger.UserID(r.UserID.String()), slog.String("subscription_id", sub.ID().String()))
		default:
			metrics.PushDeliveriesTotal.WithLabelValues(metrics.ResultError).Inc()
			s.logger.WarnContext(ctx, "push delivery failed",
				logger.UserID(r.UserID.String()), logger.Error(err))
		}
	}
}
