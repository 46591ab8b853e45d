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

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, validator: validator.New()}
}

func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		status := models.NotificationStatus(r.URL.Query().Get("status"))
		if status != models.NotificationStatusRead {
			status = models.NotificationStatusUnread
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 50 {
			pageSize = 20
		}

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), status, page, pageSize)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *NotificationHandler) MarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.notificationService.MarkRead(r.Context(), id); err != nil {
			logger.Error("Failed to mark notification read", slog.String("notificationId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"read": true})
	}
}

// SendEmail lets back office staff push an ad-hoc email through the same
// pipeline the automatic notifications use.
func (h *NotificationHandler) SendEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.EmailNotificationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.notificationService.SendEmail(r.Context(), &req); err != nil {
			logger.Error("Failed to send email", slog.String("to", req.To), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"sent": true})
	}
}
