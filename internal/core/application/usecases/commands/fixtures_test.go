package commands_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	t0       = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tripMeta = manifest.Meta{VehicleNumber: "B 1234 XY", DriverName: "Sam"}
)

func newActor(t *testing.T, role kernel.Role, tenant kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, tenant)
	require.NoError(t, err)
	return a
}

func newShipmentAt(t *testing.T, origin, destination kernel.UUID, creator kernel.UUID) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(kernel.NewUUID(), "TRK-"+kernel.NewUUID().String()[:8], origin, destination, creator, t0)
	require.NoError(t, err)
	return s
}

func arrivedShipment(t *testing.T, origin, destination kernel.UUID) *shipment.Shipment {
	t.Helper()
	s := newShipmentAt(t, origin, destination, kernel.NewUUID())
	manifestID := kernel.NewUUID()
	require.NoError(t, s.Dispatch(manifestID, kernel.NewUUID(), t0))
	require.NoError(t, s.Receive(manifestID, kernel.NewUUID(), t0))
	return s
}

func inTransitManifest(t *testing.T, from, to kernel.UUID, shipments ...*shipment.Shipment) *manifest.Manifest {
	t.Helper()
	ids := make([]kernel.UUID, 0, len(shipments))
	for _, s := range shipments {
		ids = append(ids, s.ID())
	}
	m, err := manifest.NewManifest(kernel.NewUUID(), from, to, ids, tripMeta, kernel.NewUUID(), t0)
	require.NoError(t, err)
	for _, s := range shipments {
		require.NoError(t, s.Dispatch(m.ID(), kernel.NewUUID(), t0))
	}
	return m
}

func eventsOfKinds(kinds ...event.Kind) interface{} {
	return mock.MatchedBy(func(evs []event.Event) bool {
		if len(evs) != len(kinds) {
			return false
		}
		for i, e := range evs {
			if e.Kind != kinds[i] {
				return false
			}
		}
		return true
	})
}
