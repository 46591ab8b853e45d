package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockDeliverySlotRepository struct {
	mock.Mock
}

func NewMockDeliverySlotRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeliverySlotRepository {
	m := &MockDeliverySlotRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockDeliverySlotRepository) CreateSlot(ctx context.Context, slot *models.DeliverySlot) error {
	ret := _m.Called(ctx, slot)

	return ret.Error(0)
}

func (_m *MockDeliverySlotRepository) GetSlotByID(ctx context.Context, id uuid.UUID) (*models.DeliverySlot, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.DeliverySlot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.DeliverySlot)
	}

	return r0, ret.Error(1)
}

func (_m *MockDeliverySlotRepository) ListSlots(ctx context.Context, page, size int) ([]*models.DeliverySlot, int, error) {
	ret := _m.Called(ctx, page, size)

	var r0 []*models.DeliverySlot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.DeliverySlot)
	}

	return r0, ret.Get(1).(int), ret.Error(2)
}
