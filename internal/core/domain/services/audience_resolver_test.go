package services_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, id kernel.UUID, tenant kernel.UUID, role kernel.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(id, tenant, role)
	require.NoError(t, err)
	return u
}

func userIDs(a services.Audience) []kernel.UUID {
	ids := make([]kernel.UUID, 0, a.Len())
	for _, r := range a.Recipients() {
		ids = append(ids, r.UserID)
	}
	return ids
}

func TestAudienceResolver_Resolve(t *testing.T) {
	r := services.NewAudienceResolver()
	tenant, other := kernel.NewUUID(), kernel.NewUUID()

	a1 := mustUser(t, kernel.NewUUID(), tenant, kernel.RoleAdmin)
	a2 := mustUser(t, kernel.NewUUID(), tenant, kernel.RoleAdmin)
	d1 := mustUser(t, kernel.NewUUID(), tenant, kernel.RoleDispatcher)
	u1 := mustUser(t, kernel.NewUUID(), tenant, kernel.RoleStaff)
	otherAdmin := mustUser(t, kernel.NewUUID(), other, kernel.RoleAdmin)
	directory := []*user.User{a1, a2, d1, u1, otherAdmin}

	t.Run("delivered notifies managers and the assignee", func(t *testing.T) {
		shipmentID, staff := kernel.NewUUID(), u1.ID()
		e := event.Event{Kind: event.Delivered, TenantID: tenant, ShipmentID: &shipmentID, AssignedStaffID: &staff}

		audience := r.Resolve(e, []*user.User{a1, a2, u1, otherAdmin})

		assert.Equal(t, 3, audience.Len())
		assert.ElementsMatch(t, []kernel.UUID{a1.ID(), a2.ID(), u1.ID()}, userIDs(audience))
	})

	t.Run("creation events reach managers of the tenant only", func(t *testing.T) {
		for _, kind := range []event.Kind{event.ShipmentCreated, event.ManifestCreated, event.ManifestArrived} {
			audience := r.Resolve(event.Event{Kind: kind, TenantID: tenant}, directory)
			assert.ElementsMatch(t, []kernel.UUID{a1.ID(), a2.ID(), d1.ID()}, userIDs(audience), kind)
		}
	})

	t.Run("manifest dispatched reaches both branches", func(t *testing.T) {
		e := event.Event{Kind: event.ManifestDispatched, TenantID: tenant, FromBranch: &tenant, ToBranch: &other}

		assert.ElementsMatch(t, []kernel.UUID{tenant, other}, r.Branches(e))

		audience := r.Resolve(e, directory)
		assert.ElementsMatch(t, []kernel.UUID{a1.ID(), a2.ID(), d1.ID(), otherAdmin.ID()}, userIDs(audience))
		for _, rc := range audience.Recipients() {
			if rc.UserID == otherAdmin.ID() {
				assert.Equal(t, other, rc.TenantID)
			}
		}
	})

	t.Run("a manager who is also the assignee is notified once", func(t *testing.T) {
		shipmentID, staff := kernel.NewUUID(), a1.ID()
		e := event.Event{Kind: event.DeliveryAssigned, TenantID: tenant, ShipmentID: &shipmentID, AssignedStaffID: &staff}

		audience := r.Resolve(e, append(directory, a1))

		assert.Equal(t, 3, audience.Len())
		assert.ElementsMatch(t, []kernel.UUID{a1.ID(), a2.ID(), d1.ID()}, userIDs(audience))
	})

	t.Run("non-delivery kinds ignore the assignee", func(t *testing.T) {
		staff := u1.ID()
		audience := r.Resolve(event.Event{Kind: event.ShipmentCreated, TenantID: tenant, AssignedStaffID: &staff}, nil)
		assert.True(t, audience.IsEmpty())
	})

	t.Run("unconstructed directory entries are skipped", func(t *testing.T) {
		audience := r.Resolve(event.Event{Kind: event.ShipmentCreated, TenantID: tenant}, []*user.User{nil, {}, a1})
		assert.Equal(t, []kernel.UUID{a1.ID()}, userIDs(audience))
	})
}
