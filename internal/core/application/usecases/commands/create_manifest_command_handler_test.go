package commands_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type manifestHarness struct {
	shipments *MockShipmentRepository
	manifests *MockManifestRepository
	outbox    *MockOutboxRepository
	uow       *MockUoW
	factory   *MockUoWFactory
	publisher *recordingPublisher
}

func newManifestHarness() *manifestHarness {
	h := &manifestHarness{
		shipments: new(MockShipmentRepository),
		manifests: new(MockManifestRepository),
		outbox:    new(MockOutboxRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		publisher: &recordingPublisher{},
	}
	h.factory.On("Create").Return(h.uow).Maybe()
	h.uow.On("ShipmentRepository").Return(h.shipments).Maybe()
	h.uow.On("ManifestRepository").Return(h.manifests).Maybe()
	h.uow.On("OutboxRepository").Return(h.outbox).Maybe()
	h.uow.On("Begin", mock.Anything).Return(nil).Maybe()
	h.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return h
}

func ids(shipments ...*shipment.Shipment) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, s.ID())
	}
	return out
}

func TestCreateManifestCommandHandler_Handle(t *testing.T) {
	b1, b2 := kernel.NewUUID(), kernel.NewUUID()
	actor := newActor(t, kernel.RoleDispatcher, b1)

	t.Run("dispatches every shipment and emits created then dispatched", func(t *testing.T) {
		s := newShipmentAt(t, b1, b2, actor.UserID())
		h := newManifestHarness()
		cmd, err := commands.NewCreateManifestCommand(kernel.NewUUID(), actor, b2, ids(s), tripMeta)
		require.NoError(t, err)

		h.shipments.On("GetMany", mock.Anything, ids(s)).Return([]*shipment.Shipment{s}, nil).Once()
		h.manifests.On("OpenManifestsOf", mock.Anything, ids(s)).Return(map[kernel.UUID]kernel.UUID{}, nil).Once()
		h.shipments.On("Update", mock.Anything, s).Return(nil).Once()
		h.manifests.On("Add", mock.Anything, mock.MatchedBy(func(m *manifest.Manifest) bool {
			return m.ID() == cmd.ManifestID() && m.Status() == manifest.InTransit
		})).Return(nil).Once()
		h.outbox.On("Add", mock.Anything, eventsOfKinds(event.ManifestCreated, event.ManifestDispatched)).Return(nil).Once()
		h.uow.On("Commit", mock.Anything).Return(nil).Once()

		m, err := commands.NewCreateManifestCommandHandler(h.factory, h.publisher).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, manifest.InTransit, m.Status())
		assert.Equal(t, b1, m.FromBranch())
		assert.Equal(t, shipment.InTransitToDestination, s.Status())
		assert.Equal(t, "assigned to manifest "+m.ID().String(), s.History()[0].Note())
		assert.Equal(t, []event.Kind{event.ManifestCreated, event.ManifestDispatched}, h.publisher.kinds())
		h.shipments.AssertExpectations(t)
		h.manifests.AssertExpectations(t)
		h.outbox.AssertExpectations(t)
	})

	t.Run("reports every offending shipment and writes nothing", func(t *testing.T) {
		ok := newShipmentAt(t, b1, b2, actor.UserID())
		foreign := newShipmentAt(t, kernel.NewUUID(), b2, actor.UserID())
		elsewhere := newShipmentAt(t, b1, kernel.NewUUID(), actor.UserID())
		moving := newShipmentAt(t, b1, b2, actor.UserID())
		require.NoError(t, moving.Dispatch(kernel.NewUUID(), actor.UserID(), t0))
		onOpen := newShipmentAt(t, b1, b2, actor.UserID())
		missing := kernel.NewUUID()
		openManifest := kernel.NewUUID()

		all := append(ids(ok, foreign, elsewhere, moving, onOpen), missing)
		loaded := []*shipment.Shipment{ok, foreign, elsewhere, moving, onOpen}

		h := newManifestHarness()
		h.shipments.On("GetMany", mock.Anything, all).Return(loaded, nil).Once()
		h.manifests.On("OpenManifestsOf", mock.Anything, all).
			Return(map[kernel.UUID]kernel.UUID{onOpen.ID(): openManifest}, nil).Once()

		cmd, err := commands.NewCreateManifestCommand(kernel.NewUUID(), actor, b2, all, tripMeta)
		require.NoError(t, err)

		m, err := commands.NewCreateManifestCommandHandler(h.factory, h.publisher).Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.Nil(t, m)
		var rejected *errs.RejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, []string{
			foreign.ID().String(), elsewhere.ID().String(), moving.ID().String(), onOpen.ID().String(), missing.String(),
		}, rejected.IDs())
		require.ErrorIs(t, err, errs.ErrForbidden)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		require.ErrorIs(t, err, errs.ErrConflict)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		assert.Equal(t, shipment.AtOriginBranch, ok.Status())
		assert.Len(t, ok.History(), 1)
		h.shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		h.manifests.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		h.outbox.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		h.uow.AssertNotCalled(t, "Commit", mock.Anything)
		assert.Empty(t, h.publisher.kinds())
	})

	t.Run("a failing update rolls back and publishes nothing", func(t *testing.T) {
		s1 := newShipmentAt(t, b1, b2, actor.UserID())
		s2 := newShipmentAt(t, b1, b2, actor.UserID())
		h := newManifestHarness()
		h.shipments.On("GetMany", mock.Anything, ids(s1, s2)).Return([]*shipment.Shipment{s1, s2}, nil).Once()
		h.manifests.On("OpenManifestsOf", mock.Anything, ids(s1, s2)).Return(map[kernel.UUID]kernel.UUID{}, nil).Once()
		h.shipments.On("Update", mock.Anything, s1).Return(nil).Once()
		h.shipments.On("Update", mock.Anything, s2).Return(errors.New("connection reset")).Once()

		cmd, _ := commands.NewCreateManifestCommand(kernel.NewUUID(), actor, b2, ids(s1, s2), tripMeta)
		_, err := commands.NewCreateManifestCommandHandler(h.factory, h.publisher).Handle(t.Context(), cmd)

		require.EqualError(t, err, "connection reset")
		h.uow.AssertCalled(t, "Rollback", mock.Anything)
		h.uow.AssertNotCalled(t, "Commit", mock.Anything)
		assert.Empty(t, h.publisher.kinds())
	})

	t.Run("invalid trip data fails before the transaction", func(t *testing.T) {
		h := newManifestHarness()
		cmd, err := commands.NewCreateManifestCommand(kernel.NewUUID(), actor, b1, []kernel.UUID{kernel.NewUUID()}, manifest.Meta{})
		require.NoError(t, err)

		_, err = commands.NewCreateManifestCommandHandler(h.factory, h.publisher).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		h.factory.AssertNotCalled(t, "Create")
	})
}

func TestNewCreateManifestCommand(t *testing.T) {
	actor := newActor(t, kernel.RoleAdmin, kernel.NewUUID())

	_, err := commands.NewCreateManifestCommand(kernel.NewUUID(), actor, kernel.NewUUID(), nil, tripMeta)
	require.ErrorIs(t, err, manifest.ErrShipmentsAreRequired)
}
