package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mdsweden/storefront-backend/internal/api/middleware"
	"github.com/mdsweden/storefront-backend/internal/models"
	service "github.com/mdsweden/storefront-backend/internal/services"
	"github.com/mdsweden/storefront-backend/internal/utils"
	"github.com/mdsweden/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type VoucherHandler struct {
	voucherService service.VoucherService
	validator      *validator.Validate
}

func NewVoucherHandler(voucherService service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService, validator: validator.New()}
}

func (h *VoucherHandler) CreateVoucher() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateVoucherRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		voucher, err := h.voucherService.CreateVoucher(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create voucher", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Voucher created", slog.String("code", voucher.Code))
		response.Success(w, http.StatusCreated, voucher)
	}
}

// ApplyVoucher previews the discount for a purchase amount without burning
// a use.
func (h *VoucherHandler) ApplyVoucher() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.ApplyVoucherRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.voucherService.ApplyVoucher(r.Context(), &req)
		if err != nil {
			logger.Warn("Voucher application rejected", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *VoucherHandler) ListVouchers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		vouchers, err := h.voucherService.ListVouchers(r.Context())
		if err != nil {
			logger.Error("Failed to list vouchers", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, vouchers)
	}
}

func (h *VoucherHandler) DeleteVoucher() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.voucherService.DeleteVoucher(r.Context(), id); err != nil {
			logger.Error("Failed to delete voucher", slog.String("voucherId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
