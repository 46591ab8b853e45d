package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAddressRepository struct {
	mock.Mock
}

func NewMockAddressRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAddressRepository {
	m := &MockAddressRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockAddressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	ret := _m.Called(ctx, address)

	return ret.Error(0)
}

func (_m *MockAddressRepository) GetAddressByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Address)
	}

	return r0, ret.Error(1)
}

func (_m *MockAddressRepository) ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Address)
	}

	return r0, ret.Error(1)
}
