package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/mdsweden/storefront-backend/pkg/payment"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPaymentService struct {
	mock.Mock
}

func NewMockPaymentService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPaymentService {
	m := &MockPaymentService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockPaymentService) CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.PaymentResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PaymentResponse)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentService) RefundPayment(ctx context.Context, req *models.RefundRequest) (*models.Payment, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Payment)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentService) UpdateOrderID(ctx context.Context, id uuid.UUID, orderID string) error {
	ret := _m.Called(ctx, id, orderID)

	return ret.Error(0)
}

func (_m *MockPaymentService) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Payment)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentService) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Payment)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (payment.Event, error) {
	ret := _m.Called(ctx, payload, signature)

	return ret.Get(0).(payment.Event), ret.Error(1)
}
