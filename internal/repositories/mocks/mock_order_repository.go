package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order, cartID uuid.UUID) (map[uuid.UUID]int, error) {
	ret := _m.Called(ctx, order, cartID)

	var r0 map[uuid.UUID]int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[uuid.UUID]int)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) GetOrderByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	ret := _m.Called(ctx, orderID)

	var r0 *models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	ret := _m.Called(ctx, userID, page, size)

	var r0 []*models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Order)
	}

	return r0, ret.Get(1).(int), ret.Error(2)
}

func (_m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	ret := _m.Called(ctx, id, status)

	return ret.Error(0)
}

func (_m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentStatus models.PaymentStatus) error {
	ret := _m.Called(ctx, id, paymentStatus)

	return ret.Error(0)
}
