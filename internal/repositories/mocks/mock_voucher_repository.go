package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockVoucherRepository struct {
	mock.Mock
}

func NewMockVoucherRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVoucherRepository {
	m := &MockVoucherRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockVoucherRepository) CreateVoucher(ctx context.Context, voucher *models.Voucher) error {
	ret := _m.Called(ctx, voucher)

	return ret.Error(0)
}

func (_m *MockVoucherRepository) GetActiveByCode(ctx context.Context, code string) (*models.Voucher, error) {
	ret := _m.Called(ctx, code)

	var r0 *models.Voucher
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Voucher)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoucherRepository) Consume(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func (_m *MockVoucherRepository) ListVouchers(ctx context.Context) ([]*models.Voucher, error) {
	ret := _m.Called(ctx)

	var r0 []*models.Voucher
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Voucher)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoucherRepository) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}
