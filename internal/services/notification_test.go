package service_test

import (
	"testing"
	"time"

	appErrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repoMocks "github.com/mdsweden/storefront-backend/internal/repositories/mocks"
	service "github.com/mdsweden/storefront-backend/internal/services"
	sendgridMocks "github.com/mdsweden/storefront-backend/pkg/sendgrid/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type notificationServiceMocks struct {
	repo        *repoMocks.MockNotificationRepository
	userRepo    *repoMocks.MockUserRepository
	productRepo *repoMocks.MockProductRepository
	email       *sendgridMocks.MockEmailService
	svc         service.NotificationService
}

func newNotificationService(t *testing.T) *notificationServiceMocks {
	t.Helper()

	m := &notificationServiceMocks{
		repo:        repoMocks.NewMockNotificationRepository(t),
		userRepo:    repoMocks.NewMockUserRepository(t),
		productRepo: repoMocks.NewMockProductRepository(t),
		email:       sendgridMocks.NewMockEmailService(t),
	}

	m.svc = service.NewNotificationService(m.repo, m.userRepo, m.productRepo, m.email)

	return m
}

func TestNotifyOrderPlaced(t *testing.T) {
	ctx := t.Context()

	user := &models.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com"}

	order := &models.Order{
		ID:                   uuid.New(),
		OrderID:              "2026-4f9c21a-09-01",
		UserID:               user.ID,
		TotalAmount:          215.50,
		ExpectedDeliveryDate: time.Now().AddDate(0, 0, 3),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		m := newNotificationService(t)

		m.userRepo.On("GetUserByID", ctx, user.ID).Return(user, nil).Once()
		m.repo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Kind == models.NotificationKindOrderPlaced && n.Status == models.NotificationStatusUnread
		})).Return(nil).Once()
		m.email.On("Send", ctx, mock.MatchedBy(func(req *models.EmailNotificationRequest) bool {
			return req.To == user.Email
		})).Return(nil).Once()

		// Act
		err := m.svc.NotifyOrderPlaced(ctx, order)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Email Rejected", func(t *testing.T) {
		// Arrange
		m := newNotificationService(t)

		m.userRepo.On("GetUserByID", ctx, user.ID).Return(user, nil).Once()
		m.repo.On("CreateNotification", ctx, mock.AnythingOfType("*models.Notification")).Return(nil).Once()
		m.email.On("Send", ctx, mock.AnythingOfType("*models.EmailNotificationRequest")).Return(assert.AnError).Once()

		// Act
		err := m.svc.NotifyOrderPlaced(ctx, order)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}

func TestNotifyStockLevel(t *testing.T) {
	ctx := t.Context()

	product := &models.Product{ID: uuid.New(), Name: "Oat Milk", Stock: 3}

	t.Run("Success - Low Stock", func(t *testing.T) {
		// Arrange
		m := newNotificationService(t)

		m.productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		m.repo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Kind == models.NotificationKindLowStock
		})).Return(nil).Once()

		// Act
		err := m.svc.NotifyStockLevel(ctx, product.ID, 3)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Success - Out Of Stock", func(t *testing.T) {
		// Arrange
		m := newNotificationService(t)

		m.productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		m.repo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Kind == models.NotificationKindOutOfStock
		})).Return(nil).Once()

		// Act
		err := m.svc.NotifyStockLevel(ctx, product.ID, 0)

		// Assert
		assert.NoError(t, err)
	})
}
