package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/mdsweden/storefront-backend/pkg/payment"
	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func NewMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockProvider) Name() string {
	ret := _m.Called()

	return ret.String(0)
}

func (_m *MockProvider) Charge(ctx context.Context, req *models.PaymentRequest) (*payment.Result, error) {
	ret := _m.Called(ctx, req)

	var r0 *payment.Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*payment.Result)
	}

	return r0, ret.Error(1)
}

func (_m *MockProvider) Refund(ctx context.Context, externalID string, amount *float64) (*payment.Result, error) {
	ret := _m.Called(ctx, externalID, amount)

	var r0 *payment.Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*payment.Result)
	}

	return r0, ret.Error(1)
}
