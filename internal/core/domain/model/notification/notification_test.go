package notification_test

import (
	"errors"
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func shipmentEvent(kind event.Kind) event.Event {
	id := kernel.NewUUID()
	return event.Event{
		ID:         kernel.NewUUID(),
		Kind:       kind,
		TenantID:   kernel.NewUUID(),
		ShipmentID: &id,
		TrackingID: "TRK-77",
		OccurredAt: t0,
	}
}

func TestRender(t *testing.T) {
	t.Run("every kind has a template mentioning the tracking id", func(t *testing.T) {
		for _, k := range event.Kinds() {
			msg := notification.Render(shipmentEvent(k))
			assert.NotEmpty(t, msg.Title, k)
			assert.Contains(t, msg.Body, "TRK-77", k)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		e := shipmentEvent(event.Delivered)
		assert.Equal(t, notification.Render(e), notification.Render(e))
		assert.Equal(t, "Shipment TRK-77 was delivered.", notification.Render(e).Body)
	})

	t.Run("links to the aggregate", func(t *testing.T) {
		e := shipmentEvent(event.OutForDelivery)
		assert.Equal(t, "/shipments/"+e.ShipmentID.String(), notification.Render(e).URL)

		manifestID := kernel.NewUUID()
		m := event.Event{Kind: event.ManifestArrived, ManifestID: &manifestID, TrackingID: manifestID.String()}
		assert.Equal(t, "/manifests/"+manifestID.String(), notification.Render(m).URL)
	})
}

func TestNewNotification(t *testing.T) {
	e := shipmentEvent(event.DeliveryAssigned)
	tenant, recipient := kernel.NewUUID(), kernel.NewUUID()

	n, err := notification.NewNotification(kernel.NewUUID(), tenant, recipient, e, "hello", t0)
	require.NoError(t, err)
	require.NoError(t, n.Validate())
	assert.False(t, n.IsRead())
	assert.Equal(t, event.DeliveryAssigned, n.EventType())
	assert.Equal(t, e.ID, n.EventID())
	assert.Equal(t, e.ShipmentID, n.ShipmentID())
	assert.Equal(t, "TRK-77", n.TrackingID())

	_, err = notification.NewNotification(kernel.NewUUID(), tenant, kernel.UUID{}, e, " ", t0)
	require.ErrorIs(t, err, notification.ErrMessageIsRequired)

	e.ID = kernel.UUID{}
	_, err = notification.NewNotification(kernel.NewUUID(), tenant, recipient, e, "hello", t0)
	require.Error(t, err, "a notification must name the event it came from")
}

func TestNewPushSubscription(t *testing.T) {
	tenant, user := kernel.NewUUID(), kernel.NewUUID()

	p, err := notification.NewPushSubscription(kernel.NewUUID(), tenant, user, " https://push.example/abc ", "auth", "p256")
	require.NoError(t, err)
	assert.Equal(t, "https://push.example/abc", p.Endpoint())

	cases := map[string][3]string{
		"empty endpoint":    {"", "a", "p"},
		"relative endpoint": {"/push/abc", "a", "p"},
		"ftp endpoint":      {"ftp://push.example", "a", "p"},
		"missing keys":      {"https://push.example/abc", "", "p"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := notification.NewPushSubscription(kernel.NewUUID(), tenant, user, c[0], c[1], c[2])
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrValueIsRequired) || errors.Is(err, errs.ErrValueIsInvalid))
		})
	}
}
