package mocks

import (
	"github.com/mdsweden/storefront-backend/pkg/payment"
	"github.com/stretchr/testify/mock"
)

type MockWebhookVerifier struct {
	mock.Mock
}

func NewMockWebhookVerifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWebhookVerifier {
	m := &MockWebhookVerifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockWebhookVerifier) VerifyWebhookSignature(payload []byte, signature string) (payment.Event, error) {
	ret := _m.Called(payload, signature)

	return ret.Get(0).(payment.Event), ret.Error(1)
}
