package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRateLimitRepository struct {
	mock.Mock
}

func NewMockRateLimitRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRateLimitRepository {
	m := &MockRateLimitRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	ret := _m.Called(ctx, username)

	return ret.Get(0).(bool), ret.Get(1).(int), ret.Get(2).(int), ret.Error(3)
}
