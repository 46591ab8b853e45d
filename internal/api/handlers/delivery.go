package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mdsweden/storefront-backend/internal/api/middleware"
	"github.com/mdsweden/storefront-backend/internal/models"
	service "github.com/mdsweden/storefront-backend/internal/services"
	"github.com/mdsweden/storefront-backend/internal/utils"
	"github.com/mdsweden/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type DeliveryHandler struct {
	deliveryService service.DeliveryService
	validator       *validator.Validate
}

func NewDeliveryHandler(deliveryService service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService, validator: validator.New()}
}

func (h *DeliveryHandler) CreateSlot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateDeliverySlotRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		slot, err := h.deliveryService.CreateSlot(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create delivery slot", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, slot)
	}
}

func (h *DeliveryHandler) GetSlot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		slot, err := h.deliveryService.GetSlotByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get delivery slot", slog.String("slotId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, slot)
	}
}

func (h *DeliveryHandler) ListSlots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 50 {
			pageSize = 20
		}

		slots, total, err := h.deliveryService.ListSlots(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list delivery slots", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     slots,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
