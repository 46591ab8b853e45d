package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/mdsweden/storefront-backend/internal/api/middleware"
	"github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	service "github.com/mdsweden/storefront-backend/internal/services"
	"github.com/mdsweden/storefront-backend/internal/utils"
	"github.com/mdsweden/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

func (h *PaymentHandler) CreatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized payment attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.PaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		req.UserID = claims.UserID

		payment, err := h.paymentService.CreatePayment(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to initiate payment",
				slog.String("userId", claims.UserID.String()),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Payment initiated",
			slog.String("paymentId", payment.Payment.ID.String()),
			slog.String("provider", payment.Payment.Provider))
		response.Success(w, http.StatusOK, payment)
	}
}

func (h *PaymentHandler) RefundPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.RefundRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		payment, err := h.paymentService.RefundPayment(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to refund payment",
				slog.String("paymentId", req.PaymentID.String()),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Payment refunded", slog.String("paymentId", payment.ID.String()))
		response.Success(w, http.StatusOK, payment)
	}
}

func (h *PaymentHandler) GetPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized payment access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		payment, err := h.paymentService.GetPaymentByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get payment", slog.String("paymentId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		if payment.UserID != claims.UserID {
			response.Error(w, errors.ForbiddenError("You don't have permission to access this payment"))
			return
		}

		response.Success(w, http.StatusOK, payment)
	}
}

func (h *PaymentHandler) ListPayments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized payment list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		payments, err := h.paymentService.ListPaymentsByUser(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to list user payments", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"payments": payments,
			"total":    len(payments),
		})
	}
}

// HandleStripeWebhook verifies and applies asynchronous settlement events.
func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Error reading webhook body", slog.Any("error", err))
			response.Error(w, errors.BadRequestError("Failed to read request body"))

			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Error("Missing Stripe signature")
			response.Error(w, errors.BadRequestError("Stripe Signature is required"))

			return
		}

		event, err := h.paymentService.ProcessWebhook(r.Context(), payload, signature)
		if err != nil {
			logger.Error("Failed to process payment webhook",
				slog.String("eventId", event.ID),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Payment webhook processed", slog.String("eventId", event.ID))
		response.Success(w, http.StatusOK, map[string]bool{"success": true})
	}
}
