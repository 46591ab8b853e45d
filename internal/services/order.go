package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/metrics"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/google/uuid"
)

const (
	orderIDRetries = 3
	lowStockFloor  = 4
)

// validStatusTransitions is the one-way order lifecycle. Anything not listed
// here is rejected as a conflict, so an order can never move backwards.
var validStatusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:         {models.OrderStatusApproved, models.OrderStatusDeclined, models.OrderStatusCancelled},
	models.OrderStatusApproved:        {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:         {models.OrderStatusDelivered, models.OrderStatusDeliveryDelayed},
	models.OrderStatusDeliveryDelayed: {models.OrderStatusDelivered},
}

type OrderService interface {
	// BuildSummary prices the user's cart without touching stock, vouchers
	// or payments.
	BuildSummary(ctx context.Context, req *models.OrderSummaryRequest) (*models.OrderSummary, error)
	// CreateOrder runs the full checkout: price, voucher, payment, then the
	// transactional stock decrement and order insert.
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	slotRepo     repository.DeliverySlotRepository
	addressRepo  repository.AddressRepository
	pricing      *PricingEngine
	vouchers     VoucherService
	payments     PaymentService
	notifier     NotificationService
	currency     string
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	slotRepo repository.DeliverySlotRepository,
	addressRepo repository.AddressRepository,
	pricing *PricingEngine,
	vouchers VoucherService,
	payments PaymentService,
	notifier NotificationService,
	currency string,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		slotRepo:    slotRepo,
		addressRepo: addressRepo,
		pricing:     pricing,
		vouchers:    vouchers,
		payments:    payments,
		notifier:    notifier,
		currency:    currency,
	}
}

// checkoutContext gathers everything the summary and checkout paths share.
type checkoutContext struct {
	cart            *models.Cart
	items           []models.OrderItem
	slot            *models.DeliverySlot
	address         *models.Address
	voucher         *models.Voucher
	voucherDiscount float64
	total           float64
}

func (s *orderService) resolveCheckout(ctx context.Context, userID uuid.UUID, voucherCode string, slotID, addressID uuid.UUID) (*checkoutContext, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFoundError("Cart not found").WithError(err)
	}

	if cart.IsEmpty() {
		return nil, apperrors.BadRequestError("Cannot create order with empty cart")
	}

	address, err := s.addressRepo.GetAddressByID(ctx, addressID)
	if err != nil {
		return nil, apperrors.NotFoundError("Address not found").WithError(err)
	}

	if address.UserID != userID {
		return nil, apperrors.AddressMismatchError("Address does not belong to this user")
	}

	slot, err := s.slotRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, apperrors.NotFoundError("Delivery slot not found").WithError(err)
	}

	// Price every line from the live product rows. Stock is only verified
	// here; the authoritative check happens inside the order transaction.
	items := make([]models.OrderItem, 0, len(cart.Items))

	for _, cartItem := range cart.Items {
		product, err := s.productRepo.GetProductByID(ctx, cartItem.ProductID)
		if err != nil {
			return nil, apperrors.NotFoundError("Product not found: " + cartItem.ProductID.String()).WithError(err)
		}

		if product.Stock < cartItem.Quantity {
			return nil, apperrors.InsufficientStockError("Insufficient stock for product: " + product.Name)
		}

		items = append(items, s.pricing.PriceLine(product, cartItem.Quantity))
	}

	chk := &checkoutContext{cart: cart, items: items, slot: slot, address: address}

	if voucherCode != "" {
		voucher, err := s.vouchers.Resolve(ctx, voucherCode)
		if err != nil {
			return nil, err
		}

		chk.voucher = voucher
		chk.voucherDiscount = voucher.DiscountValue
	}

	chk.total = s.pricing.Total(items, slot.DeliveryCharge, chk.voucherDiscount)

	return chk, nil
}

// BuildSummary implements OrderService.
func (s *orderService) BuildSummary(ctx context.Context, req *models.OrderSummaryRequest) (*models.OrderSummary, error) {
	chk, err := s.resolveCheckout(ctx, req.UserID, req.VoucherCode, req.DeliverySlotID, req.AddressID)
	if err != nil {
		return nil, err
	}

	subtotal, totalDiscount := s.pricing.Subtotal(chk.items)

	return &models.OrderSummary{
		Items:           chk.items,
		Subtotal:        subtotal,
		TotalDiscount:   totalDiscount,
		VoucherDiscount: chk.voucherDiscount,
		DeliveryCharge:  chk.slot.DeliveryCharge,
		Total:           chk.total,
	}, nil
}

// CreateOrder implements OrderService.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, error) {
	chk, err := s.resolveCheckout(ctx, req.UserID, req.VoucherCode, req.DeliverySlotID, req.AddressID)
	if err != nil {
		s.countCheckoutFailure(err)
		return nil, err
	}

	// The voucher use is burned before the charge, matching the order of
	// operations the storefront promises the customer.
	if chk.voucher != nil {
		if err := s.vouchers.Consume(ctx, chk.voucher.ID); err != nil {
			s.countCheckoutFailure(err)
			return nil, err
		}
	}

	humanID := generateOrderID()

	paymentResp, err := s.payments.CreatePayment(ctx, &models.PaymentRequest{
		UserID:      req.UserID,
		OrderID:     humanID,
		Amount:      chk.total,
		Currency:    s.currency,
		Provider:    req.PaymentMethod,
		Description: "Order " + humanID,
		Token:       req.PaymentToken,
		PayerAlias:  req.PayerAlias,
	})
	if err != nil {
		s.countCheckoutFailure(err)
		return nil, err
	}

	// A card intent must settle before any stock moves. Redirect and
	// checkout-link charges continue pending and settle through the
	// provider's callback, so they carry a redirect URL.
	if !paymentResp.Settled && !(paymentResp.Pending && paymentResp.RedirectURL != "") {
		failErr := apperrors.PaymentFailedError("Payment did not settle")
		s.countCheckoutFailure(failErr)

		return nil, failErr
	}

	order := &models.Order{
		ID:          uuid.New(),
		OrderID:     humanID,
		UserID:      req.UserID,
		Items:       chk.items,
		TotalAmount: chk.total,
		VoucherUsed: chk.voucher != nil,
		DeliverySlot: models.DeliverySlotSnapshot{
			SlotID:     chk.slot.ID,
			Date:       chk.slot.Date.Format("2006-01-02"),
			TimePeriod: chk.slot.TimePeriod,
			Charge:     chk.slot.DeliveryCharge,
		},
		AddressID:            req.AddressID,
		PaymentID:            paymentResp.Payment.ID.String(),
		PaymentStatus:        paymentResp.Payment.Status,
		Status:               models.OrderStatusPending,
		ExpectedDeliveryDate: expectedDeliveryDate(),
	}

	if chk.voucher != nil {
		order.VoucherID = &chk.voucher.ID
	}

	// The human-readable id can collide; regenerate and retry before giving
	// up with a conflict.
	var remaining map[uuid.UUID]int

	for attempt := 0; ; attempt++ {
		remaining, err = s.orderRepo.CreateOrder(ctx, order, chk.cart.ID)
		if err == nil {
			break
		}

		if errors.Is(err, repository.ErrOrderIDTaken) && attempt < orderIDRetries-1 {
			order.OrderID = generateOrderID()
			continue
		}

		s.countCheckoutFailure(err)

		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, apperrors.InsufficientStockError("A product sold out while checking out")
		case errors.Is(err, repository.ErrOrderIDTaken):
			return nil, apperrors.ConflictError("Could not allocate an order number, please retry").WithError(err)
		default:
			return nil, apperrors.DatabaseError("Failed to create order").WithError(err)
		}
	}

	// A collision retry regenerated the order number, so the payment row
	// has to follow it or the webhook lookup will miss the order.
	if order.OrderID != humanID {
		if err := s.payments.UpdateOrderID(ctx, paymentResp.Payment.ID, order.OrderID); err != nil {
			slog.Error("Failed to repoint payment at retried order number",
				slog.String("orderId", order.OrderID), slog.Any("error", err))
		}
	}

	metrics.OrdersCreated.Inc()

	// Notifications never block or fail the checkout.
	go s.notifyOrderOutcome(order, remaining)

	return &models.OrderResponse{
		Order:        order,
		RedirectURL:  paymentResp.RedirectURL,
		ClientSecret: paymentResp.ClientSecret,
	}, nil
}

func (s *orderService) notifyOrderOutcome(order *models.Order, remaining map[uuid.UUID]int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.notifier.NotifyOrderPlaced(ctx, order); err != nil {
		slog.Error("Order placed notification failed", slog.String("orderId", order.OrderID), slog.Any("error", err))
	}

	for productID, left := range remaining {
		if left <= lowStockFloor {
			if err := s.notifier.NotifyStockLevel(ctx, productID, left); err != nil {
				slog.Error("Stock level notification failed", slog.String("productId", productID.String()), slog.Any("error", err))
			}
		}
	}
}

func (s *orderService) countCheckoutFailure(err error) {
	reason := "internal"

	if appErr, ok := apperrors.IsAppError(err); ok {
		switch appErr.Code {
		case apperrors.ErrCodeInsufficientStock:
			reason = "stock"
		case apperrors.ErrCodeVoucherExpired:
			reason = "voucher"
		case apperrors.ErrCodePaymentFailed:
			reason = "payment"
		case apperrors.ErrCodeAddressMismatch:
			reason = "address"
		case apperrors.ErrCodeConflict:
			reason = "conflict"
		case apperrors.ErrCodeNotFound, apperrors.ErrCodeBadRequest:
			reason = "validation"
		}
	}

	metrics.CheckoutFailures.WithLabelValues(reason).Inc()
}

// GetOrderByID implements OrderService.
func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// ListOrdersByUser implements OrderService.
func (s *orderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 10
	}

	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, apperrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus implements OrderService.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Order not found").WithError(err)
	}

	if !transitionAllowed(order.Status, status) {
		return nil, apperrors.ConflictError(fmt.Sprintf("Cannot move order from %s to %s", order.Status, status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = status

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.notifier.NotifyOrderStatus(ctx, order); err != nil {
			slog.Error("Order status notification failed", slog.String("orderId", order.OrderID), slog.Any("error", err))
		}
	}()

	return order, nil
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// generateOrderID builds the human-readable order number, e.g.
// 2026-4f9c21a-09-01.
func generateOrderID() string {
	now := time.Now()
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]

	return fmt.Sprintf("%d-%s-%02d-%02d", now.Year(), short, int(now.Month()), now.Day())
}

// Deliveries land in 3 to 4 days until route planning exists.
func expectedDeliveryDate() time.Time {
	return time.Now().AddDate(0, 0, 3+rand.Intn(2))
}
