package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationService {
	m := &MockNotificationService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockNotificationService) NotifyOrderPlaced(ctx context.Context, order *models.Order) error {
	ret := _m.Called(ctx, order)

	return ret.Error(0)
}

func (_m *MockNotificationService) NotifyOrderStatus(ctx context.Context, order *models.Order) error {
	ret := _m.Called(ctx, order)

	return ret.Error(0)
}

func (_m *MockNotificationService) NotifyStockLevel(ctx context.Context, productID uuid.UUID, remaining int) error {
	ret := _m.Called(ctx, productID, remaining)

	return ret.Error(0)
}

func (_m *MockNotificationService) NotifyNewUser(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)

	return ret.Error(0)
}

func (_m *MockNotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) error {
	ret := _m.Called(ctx, req)

	return ret.Error(0)
}

func (_m *MockNotificationService) ListNotifications(ctx context.Context, status models.NotificationStatus, page, size int) ([]*models.Notification, int, error) {
	ret := _m.Called(ctx, status, page, size)

	var r0 []*models.Notification
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Notification)
	}

	return r0, ret.Get(1).(int), ret.Error(2)
}

func (_m *MockNotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}
