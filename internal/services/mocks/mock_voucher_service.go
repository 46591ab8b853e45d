package mocks

import (
	"context"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockVoucherService struct {
	mock.Mock
}

func NewMockVoucherService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVoucherService {
	m := &MockVoucherService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockVoucherService) CreateVoucher(ctx context.Context, req *models.CreateVoucherRequest) (*models.Voucher, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Voucher
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Voucher)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoucherService) ApplyVoucher(ctx context.Context, req *models.ApplyVoucherRequest) (*models.ApplyVoucherResponse, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.ApplyVoucherResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.ApplyVoucherResponse)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoucherService) Resolve(ctx context.Context, code string) (*models.Voucher, error) {
	ret := _m.Called(ctx, code)

	var r0 *models.Voucher
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Voucher)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoucherService) Consume(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func (_m *MockVoucherService) ListVouchers(ctx context.Context) ([]*models.Voucher, error) {
	ret := _m.Called(ctx)

	var r0 []*models.Voucher
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Voucher)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoucherService) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}
