package service_test

import (
	"testing"
	"time"

	appErrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	repoMocks "github.com/mdsweden/storefront-backend/internal/repositories/mocks"
	service "github.com/mdsweden/storefront-backend/internal/services"
	serviceMocks "github.com/mdsweden/storefront-backend/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderServiceMocks struct {
	orderRepo   *repoMocks.MockOrderRepository
	cartRepo    *repoMocks.MockCartRepository
	productRepo *repoMocks.MockProductRepository
	slotRepo    *repoMocks.MockDeliverySlotRepository
	addressRepo *repoMocks.MockAddressRepository
	vouchers    *serviceMocks.MockVoucherService
	payments    *serviceMocks.MockPaymentService
	notifier    *serviceMocks.MockNotificationService
	svc         service.OrderService
}

func newOrderService(t *testing.T) *orderServiceMocks {
	t.Helper()

	m := &orderServiceMocks{
		orderRepo:   repoMocks.NewMockOrderRepository(t),
		cartRepo:    repoMocks.NewMockCartRepository(t),
		productRepo: repoMocks.NewMockProductRepository(t),
		slotRepo:    repoMocks.NewMockDeliverySlotRepository(t),
		addressRepo: repoMocks.NewMockAddressRepository(t),
		vouchers:    serviceMocks.NewMockVoucherService(t),
		payments:    serviceMocks.NewMockPaymentService(t),
		notifier:    serviceMocks.NewMockNotificationService(t),
	}

	m.svc = service.NewOrderService(
		m.orderRepo, m.cartRepo, m.productRepo, m.slotRepo, m.addressRepo,
		service.NewPricingEngine(), m.vouchers, m.payments, m.notifier, "sek",
	)

	return m
}

// checkoutFixture wires the happy-path reads: a cart with one product at
// quantity 2, an owned address and a delivery slot.
type checkoutFixture struct {
	userID    uuid.UUID
	cartID    uuid.UUID
	productID uuid.UUID
	slotID    uuid.UUID
	addressID uuid.UUID
}

func arrangeCheckout(m *orderServiceMocks) *checkoutFixture {
	f := &checkoutFixture{
		userID:    uuid.New(),
		cartID:    uuid.New(),
		productID: uuid.New(),
		slotID:    uuid.New(),
		addressID: uuid.New(),
	}

	cart := &models.Cart{
		ID:     f.cartID,
		UserID: f.userID,
		Items: map[string]models.CartItem{
			f.productID.String(): {ProductID: f.productID, Quantity: 2},
		},
	}

	product := &models.Product{
		ID:          f.productID,
		Name:        "Oat Milk",
		Price:       100,
		DiscountPct: 10,
		Stock:       10,
	}

	address := &models.Address{ID: f.addressID, UserID: f.userID}

	slot := &models.DeliverySlot{
		ID:             f.slotID,
		DeliveryType:   models.DeliveryTypeMorning,
		Date:           time.Now().AddDate(0, 0, 3),
		TimePeriod:     "08:00-12:00",
		DeliveryCharge: 20,
	}

	m.cartRepo.On("GetCartByUserID", mock.Anything, f.userID).Return(cart, nil).Once()
	m.addressRepo.On("GetAddressByID", mock.Anything, f.addressID).Return(address, nil).Once()
	m.slotRepo.On("GetSlotByID", mock.Anything, f.slotID).Return(slot, nil).Once()
	m.productRepo.On("GetProductByID", mock.Anything, f.productID).Return(product, nil).Once()

	return f
}

// Notifications run on a goroutine after checkout, so expectations on them
// stay optional to keep the tests deterministic.
func allowNotifications(m *orderServiceMocks) {
	m.notifier.On("NotifyOrderPlaced", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.notifier.On("NotifyStockLevel", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func TestBuildSummary(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - With Voucher", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)

		voucher := &models.Voucher{
			ID:            uuid.New(),
			Code:          "SUMMER30",
			DiscountValue: 30,
			ExpiryDate:    time.Now().Add(24 * time.Hour),
		}
		m.vouchers.On("Resolve", mock.Anything, "SUMMER30").Return(voucher, nil).Once()

		// Act
		summary, err := m.svc.BuildSummary(ctx, &models.OrderSummaryRequest{
			UserID:         f.userID,
			VoucherCode:    "SUMMER30",
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
		})

		// Assert
		assert.NoError(t, err)
		assert.Len(t, summary.Items, 1)
		assert.InDelta(t, 200, summary.Subtotal, 0.001)
		assert.InDelta(t, 20, summary.TotalDiscount, 0.001)
		assert.InDelta(t, 30, summary.VoucherDiscount, 0.001)
		assert.InDelta(t, 20, summary.DeliveryCharge, 0.001)
		assert.InDelta(t, 170, summary.Total, 0.001)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		userID := uuid.New()

		m.cartRepo.On("GetCartByUserID", mock.Anything, userID).
			Return(&models.Cart{ID: uuid.New(), UserID: userID, Items: map[string]models.CartItem{}}, nil).Once()

		// Act
		summary, err := m.svc.BuildSummary(ctx, &models.OrderSummaryRequest{
			UserID:         userID,
			DeliverySlotID: uuid.New(),
			AddressID:      uuid.New(),
		})

		// Assert
		assert.Nil(t, summary)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Failure - Address Belongs To Another User", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		userID := uuid.New()
		addressID := uuid.New()
		productID := uuid.New()

		cart := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items:  map[string]models.CartItem{productID.String(): {ProductID: productID, Quantity: 1}},
		}

		m.cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(cart, nil).Once()
		m.addressRepo.On("GetAddressByID", mock.Anything, addressID).
			Return(&models.Address{ID: addressID, UserID: uuid.New()}, nil).Once()

		// Act
		summary, err := m.svc.BuildSummary(ctx, &models.OrderSummaryRequest{
			UserID:         userID,
			DeliverySlotID: uuid.New(),
			AddressID:      addressID,
		})

		// Assert
		assert.Nil(t, summary)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeAddressMismatch, appErr.Code)
		m.slotRepo.AssertNotCalled(t, "GetSlotByID", mock.Anything, mock.Anything)
	})
}

func TestCreateOrder(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Settled Card Payment", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)
		allowNotifications(m)

		paymentID := uuid.New()
		m.payments.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *models.PaymentRequest) bool {
			return req.UserID == f.userID && req.Provider == "stripe" && req.Currency == "sek" && req.Amount == 200
		})).Return(&models.PaymentResponse{
			Payment: &models.Payment{ID: paymentID, Status: models.PaymentStatusSucceeded},
			Settled: true,
		}, nil).Once()

		m.orderRepo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(order *models.Order) bool {
			return order.UserID == f.userID &&
				order.Status == models.OrderStatusPending &&
				order.PaymentStatus == models.PaymentStatusSucceeded &&
				order.TotalAmount == 200 &&
				!order.VoucherUsed &&
				order.OrderID != ""
		}), f.cartID).Return(map[uuid.UUID]int{f.productID: 8}, nil).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "stripe",
			PaymentToken:   "pm_card_visa",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, paymentID.String(), resp.Order.PaymentID)
		assert.Equal(t, models.OrderStatusPending, resp.Order.Status)
		assert.Len(t, resp.Order.Items, 1)
	})

	t.Run("Success - Voucher Consumed Before Charge", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)
		allowNotifications(m)

		voucher := &models.Voucher{
			ID:            uuid.New(),
			Code:          "SUMMER30",
			DiscountValue: 30,
			ExpiryDate:    time.Now().Add(24 * time.Hour),
		}

		m.vouchers.On("Resolve", mock.Anything, "SUMMER30").Return(voucher, nil).Once()
		m.vouchers.On("Consume", mock.Anything, voucher.ID).Return(nil).Once()

		m.payments.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *models.PaymentRequest) bool {
			return req.Amount == 170
		})).Return(&models.PaymentResponse{
			Payment: &models.Payment{ID: uuid.New(), Status: models.PaymentStatusSucceeded},
			Settled: true,
		}, nil).Once()

		m.orderRepo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(order *models.Order) bool {
			return order.VoucherUsed && order.VoucherID != nil && *order.VoucherID == voucher.ID
		}), f.cartID).Return(map[uuid.UUID]int{f.productID: 8}, nil).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			VoucherCode:    "SUMMER30",
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "stripe",
			PaymentToken:   "pm_card_visa",
		})

		// Assert
		assert.NoError(t, err)
		assert.InDelta(t, 170, resp.Order.TotalAmount, 0.001)
	})

	t.Run("Success - Retries Colliding Order Number", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)
		allowNotifications(m)

		paymentID := uuid.New()
		m.payments.On("CreatePayment", mock.Anything, mock.Anything).Return(&models.PaymentResponse{
			Payment: &models.Payment{ID: paymentID, Status: models.PaymentStatusSucceeded},
			Settled: true,
		}, nil).Once()

		m.orderRepo.On("CreateOrder", mock.Anything, mock.Anything, f.cartID).
			Return(nil, repository.ErrOrderIDTaken).Once()
		m.orderRepo.On("CreateOrder", mock.Anything, mock.Anything, f.cartID).
			Return(map[uuid.UUID]int{f.productID: 8}, nil).Once()

		// The payment row was written with the first order number, so it has
		// to follow the regenerated one.
		m.payments.On("UpdateOrderID", mock.Anything, paymentID, mock.MatchedBy(func(orderID string) bool {
			return orderID != ""
		})).Return(nil).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "stripe",
			PaymentToken:   "pm_card_visa",
		})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, resp.Order)
	})

	t.Run("Success - Pending Redirect Charge", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)
		allowNotifications(m)

		m.payments.On("CreatePayment", mock.Anything, mock.Anything).Return(&models.PaymentResponse{
			Payment:     &models.Payment{ID: uuid.New(), Status: models.PaymentStatusPending},
			Pending:     true,
			RedirectURL: "https://pay.example.com/A1B2C3",
		}, nil).Once()

		m.orderRepo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(order *models.Order) bool {
			return order.PaymentStatus == models.PaymentStatusPending
		}), f.cartID).Return(map[uuid.UUID]int{f.productID: 8}, nil).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "swish",
			PayerAlias:     "46701234567",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/A1B2C3", resp.RedirectURL)
	})

	t.Run("Failure - Payment Declined", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)

		m.payments.On("CreatePayment", mock.Anything, mock.Anything).
			Return(nil, appErrors.PaymentFailedError("Payment was declined by the provider")).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "stripe",
			PaymentToken:   "pm_card_declined",
		})

		// Assert
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodePaymentFailed, appErr.Code)
		assert.Equal(t, 402, appErr.StatusCode)

		// No stock is touched when the charge never settles.
		m.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Charge Does Not Settle", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)

		// A canceled intent comes back as a non-error failed charge.
		m.payments.On("CreatePayment", mock.Anything, mock.Anything).Return(&models.PaymentResponse{
			Payment: &models.Payment{ID: uuid.New(), Status: models.PaymentStatusFailed},
		}, nil).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "stripe",
			PaymentToken:   "pm_card_visa",
		})

		// Assert
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodePaymentFailed, appErr.Code)
		assert.Equal(t, 402, appErr.StatusCode)

		// No order row and no stock change for an unsettled charge.
		m.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Pending Intent Without Redirect", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)

		// An intent awaiting browser-side confirmation is not settled and has
		// no redirect flow to settle it, so checkout must not proceed.
		m.payments.On("CreatePayment", mock.Anything, mock.Anything).Return(&models.PaymentResponse{
			Payment:      &models.Payment{ID: uuid.New(), Status: models.PaymentStatusPending},
			Pending:      true,
			ClientSecret: "pi_123_secret_abc",
		}, nil).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "stripe",
		})

		// Assert
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodePaymentFailed, appErr.Code)
		m.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Expired Voucher", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)

		m.vouchers.On("Resolve", mock.Anything, "OLD10").
			Return(nil, appErrors.VoucherExpiredError("Voucher has expired")).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			VoucherCode:    "OLD10",
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "stripe",
		})

		// Assert
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeVoucherExpired, appErr.Code)
		m.payments.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Product Sells Out Inside Transaction", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)
		f := arrangeCheckout(m)

		m.payments.On("CreatePayment", mock.Anything, mock.Anything).Return(&models.PaymentResponse{
			Payment: &models.Payment{ID: uuid.New(), Status: models.PaymentStatusSucceeded},
			Settled: true,
		}, nil).Once()

		m.orderRepo.On("CreateOrder", mock.Anything, mock.Anything, f.cartID).
			Return(nil, repository.ErrInsufficientStock).Once()

		// Act
		resp, err := m.svc.CreateOrder(ctx, &models.CreateOrderRequest{
			UserID:         f.userID,
			DeliverySlotID: f.slotID,
			AddressID:      f.addressID,
			PaymentMethod:  "stripe",
			PaymentToken:   "pm_card_visa",
		})

		// Assert
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := t.Context()
	orderID := uuid.New()

	t.Run("Success - Pending To Approved", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)

		order := &models.Order{ID: orderID, OrderID: "2026-4f9c21a-09-01", Status: models.OrderStatusPending}

		m.orderRepo.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()
		m.orderRepo.On("UpdateStatus", mock.Anything, orderID, models.OrderStatusApproved).Return(nil).Once()
		m.notifier.On("NotifyOrderStatus", mock.Anything, mock.Anything).Return(nil).Maybe()

		// Act
		updated, err := m.svc.UpdateOrderStatus(ctx, orderID, models.OrderStatusApproved)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusApproved, updated.Status)
	})

	t.Run("Failure - Backward Transition", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)

		order := &models.Order{ID: orderID, Status: models.OrderStatusApproved}

		m.orderRepo.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		// Act
		updated, err := m.svc.UpdateOrderStatus(ctx, orderID, models.OrderStatusPending)

		// Assert
		assert.Nil(t, updated)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeConflict, appErr.Code)
		m.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Delivered Is Terminal", func(t *testing.T) {
		// Arrange
		m := newOrderService(t)

		order := &models.Order{ID: orderID, Status: models.OrderStatusDelivered}

		m.orderRepo.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		// Act
		_, err := m.svc.UpdateOrderStatus(ctx, orderID, models.OrderStatusShipped)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeConflict, appErr.Code)
	})
}
