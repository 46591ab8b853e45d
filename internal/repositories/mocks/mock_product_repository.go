package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	ret := _m.Called(ctx, product)

	return ret.Error(0)
}

func (_m *MockProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	ret := _m.Called(ctx, product)

	return ret.Error(0)
}

func (_m *MockProductRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	ret := _m.Called(ctx, page, size)

	var r0 []*models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Product)
	}

	return r0, ret.Get(1).(int), ret.Error(2)
}

func (_m *MockProductRepository) SearchProducts(ctx context.Context, name string) ([]*models.Product, error) {
	ret := _m.Called(ctx, name)

	var r0 []*models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductRepository) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	ret := _m.Called(ctx, threshold)

	var r0 []*models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int, error) {
	ret := _m.Called(ctx, id, qty)

	return ret.Get(0).(int), ret.Error(1)
}
