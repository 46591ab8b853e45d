package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mdsweden/storefront-backend/internal/api/middleware"
	"github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	service "github.com/mdsweden/storefront-backend/internal/services"
	"github.com/mdsweden/storefront-backend/internal/utils"
	"github.com/mdsweden/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// Summary prices the current cart with the chosen voucher, slot and address
// without placing an order.
func (h *OrderHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order summary attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.OrderSummaryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid order summary input")
			return
		}

		req.UserID = claims.UserID

		summary, err := h.orderService.BuildSummary(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to build order summary", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create order input")
			return
		}

		req.UserID = claims.UserID

		resp, err := h.orderService.CreateOrder(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order created successfully", slog.String("orderId", resp.Order.OrderID))
		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order access attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		if order.UserID != claims.UserID {
			logger.Warn("Attempted to access another user's order",
				slog.String("requesterId", claims.UserID.String()),
				slog.String("ownerId", order.UserID.String()))
			response.Error(w, errors.ForbiddenError("You don't have permission to access this order"))

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order list attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 50 {
			pageSize = 10
		}

		orders, total, err := h.orderService.ListOrdersByUser(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update order status input")
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order status updated successfully", slog.String("orderId", id.String()), slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
