package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockEmailService struct {
	mock.Mock
}

func NewMockEmailService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEmailService {
	m := &MockEmailService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	ret := _m.Called(ctx, req)

	return ret.Error(0)
}
