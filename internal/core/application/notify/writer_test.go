package notify_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/notify"
	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWriter_Append(t *testing.T) {
	origin, destination := kernel.NewUUID(), kernel.NewUUID()
	admin := newUser(t, destination, kernel.RoleAdmin)
	dispatcher := newUser(t, destination, kernel.RoleDispatcher)
	staff := kernel.NewUUID()
	resolver := services.NewAudienceResolver()

	t.Run("one row per recipient", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		e := deliveryEvent(event.Delivered, origin, destination, &staff)
		// admin listed twice, the roster may overlap
		audience := resolver.Resolve(e, []*user.User{admin, dispatcher, admin})
		require.Equal(t, 3, audience.Len())

		var stored []*notification.Notification
		repo.On("AddBatch", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(1).([]*notification.Notification) }).
			Return(int64(3), nil).Once()

		written, err := notify.NewWriter(repo).Append(t.Context(), e, audience)

		require.NoError(t, err)
		assert.Equal(t, audience.Len(), written)
		require.Len(t, stored, 3)

		recipients := make([]kernel.UUID, 0, len(stored))
		for _, n := range stored {
			recipients = append(recipients, n.RecipientID())
			assert.Equal(t, event.Delivered, n.EventType())
			assert.Equal(t, "Shipment TRK-1001 was delivered.", n.Message())
			assert.False(t, n.IsRead())
			assert.True(t, n.TenantID().IsEqual(destination))
			assert.Equal(t, e.ID, n.EventID())
		}
		assert.ElementsMatch(t, []kernel.UUID{admin.ID(), dispatcher.ID(), staff}, recipients)
		repo.AssertExpectations(t)
	})

	t.Run("empty audience writes nothing", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		e := deliveryEvent(event.ShipmentCreated, origin, destination, nil)

		written, err := notify.NewWriter(repo).Append(t.Context(), e, services.Audience{})

		require.NoError(t, err)
		assert.Zero(t, written)
		repo.AssertNotCalled(t, "AddBatch", mock.Anything, mock.Anything)
	})

	t.Run("redelivery counts only new rows", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		e := deliveryEvent(event.Delivered, origin, destination, &staff)
		audience := resolver.Resolve(e, []*user.User{admin, dispatcher})
		repo.On("AddBatch", mock.Anything, mock.Anything).Return(int64(3), nil).Once()
		repo.On("AddBatch", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		w := notify.NewWriter(repo)

		first, err := w.Append(t.Context(), e, audience)
		require.NoError(t, err)
		second, err := w.Append(t.Context(), e, audience)
		require.NoError(t, err)

		assert.Equal(t, 3, first)
		assert.Zero(t, second)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		e := deliveryEvent(event.Delivered, origin, destination, &staff)
		boom := errors.New("connection reset")
		repo.On("AddBatch", mock.Anything, mock.Anything).Return(int64(0), boom).Once()

		written, err := notify.NewWriter(repo).Append(t.Context(), e, resolver.Resolve(e, []*user.User{admin}))

		require.ErrorIs(t, err, boom)
		assert.Zero(t, written)
	})
}

func TestWriter_ReadsRequireTenantAndUser(t *testing.T) {
	repo := new(MockNotificationRepository)
	w := notify.NewWriter(repo)

	_, err := w.List(t.Context(), kernel.UUID{}, kernel.NewUUID(), ports.NotificationFilter{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = w.CountUnread(t.Context(), kernel.NewUUID(), kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CountUnread", mock.Anything, mock.Anything, mock.Anything)

	tenant, userID := kernel.NewUUID(), kernel.NewUUID()
	repo.On("CountUnread", mock.Anything, tenant, userID).Return(int64(4), nil).Once()

	count, err := w.CountUnread(t.Context(), tenant, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
