package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
)

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserDirectory) ListManagers(ctx context.Context, tenantIDs []kernel.UUID) ([]*user.User, error) {
	args := m.Called(ctx, tenantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserDirectory) Sync(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) AddBatch(ctx context.Context, ns []*notification.Notification) (int64, error) {
	args := m.Called(ctx, ns)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) List(ctx context.Context, tenantID, userID kernel.UUID, filter ports.NotificationFilter) ([]*notification.Notification, error) {
	args := m.Called(ctx, tenantID, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, tenantID, userID kernel.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, tenantID, userID kernel.UUID, ids []kernel.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockPushSubscriptionRepository struct{ mock.Mock }

func (m *MockPushSubscriptionRepository) Upsert(ctx context.Context, s *notification.PushSubscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockPushSubscriptionRepository) ListByUser(ctx context.Context, tenantID, userID kernel.UUID) ([]*notification.PushSubscription, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.PushSubscription), args.Error(1)
}

func (m *MockPushSubscriptionRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, tenantID, userID kernel.UUID, endpoint string) error {
	args := m.Called(ctx, tenantID, userID, endpoint)
	return args.Error(0)
}
