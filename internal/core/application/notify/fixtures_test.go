package notify_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newUser(t *testing.T, tenant kernel.UUID, role kernel.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), tenant, role)
	require.NoError(t, err)
	return u
}

// deliveryEvent describes a shipment that reached destination and was handled
// by staff.
func deliveryEvent(kind event.Kind, origin, destination kernel.UUID, staff *kernel.UUID) event.Event {
	shipmentID := kernel.NewUUID()
	return event.Event{
		ID:              kernel.NewUUID(),
		Kind:            kind,
		TenantID:        destination,
		ShipmentID:      &shipmentID,
		TrackingID:      "TRK-1001",
		FromBranch:      &origin,
		ToBranch:        &destination,
		AssignedStaffID: staff,
		Status:          "Delivered",
		OccurredAt:      t0,
	}
}

func manifestEvent(kind event.Kind, from, to kernel.UUID) event.Event {
	manifestID := kernel.NewUUID()
	return event.Event{
		ID:         kernel.NewUUID(),
		Kind:       kind,
		TenantID:   from,
		ManifestID: &manifestID,
		TrackingID: manifestID.String(),
		FromBranch: &from,
		ToBranch:   &to,
		Status:     "InTransit",
		OccurredAt: t0,
	}
}
