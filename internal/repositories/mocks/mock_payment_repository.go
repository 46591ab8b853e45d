package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func NewMockPaymentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	ret := _m.Called(ctx, payment)

	return ret.Error(0)
}

func (_m *MockPaymentRepository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Payment)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentRepository) GetPaymentByExternalID(ctx context.Context, externalID string) (*models.Payment, error) {
	ret := _m.Called(ctx, externalID)

	var r0 *models.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Payment)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	ret := _m.Called(ctx, id, status)

	return ret.Error(0)
}

func (_m *MockPaymentRepository) UpdateOrderID(ctx context.Context, id uuid.UUID, orderID string) error {
	ret := _m.Called(ctx, id, orderID)

	return ret.Error(0)
}

func (_m *MockPaymentRepository) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Payment)
	}

	return r0, ret.Error(1)
}
