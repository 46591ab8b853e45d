package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	ret := _m.Called(ctx, notification)

	return ret.Error(0)
}

func (_m *MockNotificationRepository) ListNotifications(ctx context.Context, status models.NotificationStatus, page, size int) ([]*models.Notification, int, error) {
	ret := _m.Called(ctx, status, page, size)

	var r0 []*models.Notification
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Notification)
	}

	return r0, ret.Get(1).(int), ret.Error(2)
}

func (_m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}
