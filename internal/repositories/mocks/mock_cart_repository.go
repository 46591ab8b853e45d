package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockCartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	ret := _m.Called(ctx, cart)

	return ret.Error(0)
}

func (_m *MockCartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	ret := _m.Called(ctx, cart)

	return ret.Error(0)
}

func (_m *MockCartRepository) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	ret := _m.Called(ctx, cartID)

	return ret.Error(0)
}
