package handlers

import (
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

type AddressHandler struct {
	addressService service.AddressService
	validator      *validator.Validate
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService, validator: validator.New()}
}

func (h *AddressHandler) CreateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized address creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CreateAddressRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		address, err := h.addressService.CreateAddress(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to create address", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, address)
	}
}

func (h *AddressHandler) GetAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized address access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		address, err := h.addressService.GetAddressByID(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Error("Failed to get address", slog.String("addressId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, address)
	}
}

func (h *AddressHandler) ListAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized address list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		addresses, err := h.addressService.ListAddresses(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to list addresses", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}
