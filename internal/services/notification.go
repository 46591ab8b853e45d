package service

import (
	"context"
	"fmt"

	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/mdsweden/storefront-backend/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	NotifyOrderPlaced(ctx context.Context, order *models.Order) error
	NotifyOrderStatus(ctx context.Context, order *models.Order) error
	// NotifyStockLevel raises a low-stock alert, or out-of-stock when the
	// remaining count hits zero.
	NotifyStockLevel(ctx context.Context, productID uuid.UUID, remaining int) error
	NotifyNewUser(ctx context.Context, user *models.User) error
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) error
	ListNotifications(ctx context.Context, status models.NotificationStatus, page, size int) ([]*models.Notification, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type notificationService struct {
	repo        repository.NotificationRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	email       sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository, productRepo repository.ProductRepository, email sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, userRepo: userRepo, productRepo: productRepo, email: email}
}

// NotifyOrderPlaced implements NotificationService.
func (s *notificationService) NotifyOrderPlaced(ctx context.Context, order *models.Order) error {
	user, err := s.userRepo.GetUserByID(ctx, order.UserID)
	if err != nil {
		return apperrors.NotFoundError("User not found for order notification").WithError(err)
	}

	notification := &models.Notification{
		ID:     uuid.New(),
		Kind:   models.NotificationKindOrderPlaced,
		Title:  "New order " + order.OrderID,
		Body:   fmt.Sprintf("%s placed order %s for %.2f", user.Name, order.OrderID, order.TotalAmount),
		Status: models.NotificationStatusUnread,
		UserID: &order.UserID,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return apperrors.DatabaseError("Failed to store notification").WithError(err)
	}

	return s.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: "Your order " + order.OrderID + " has been placed",
		Content: fmt.Sprintf("Hi %s,\n\nThanks for your order %s. We expect to deliver it on %s.\n", user.Name, order.OrderID, order.ExpectedDeliveryDate.Format("2006-01-02")),
	})
}

// NotifyOrderStatus implements NotificationService.
func (s *notificationService) NotifyOrderStatus(ctx context.Context, order *models.Order) error {
	user, err := s.userRepo.GetUserByID(ctx, order.UserID)
	if err != nil {
		return apperrors.NotFoundError("User not found for order notification").WithError(err)
	}

	notification := &models.Notification{
		ID:     uuid.New(),
		Kind:   models.NotificationKindOrderStatus,
		Title:  fmt.Sprintf("Order %s is now %s", order.OrderID, order.Status),
		Body:   fmt.Sprintf("Order %s for %s moved to %s", order.OrderID, user.Name, order.Status),
		Status: models.NotificationStatusUnread,
		UserID: &order.UserID,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return apperrors.DatabaseError("Failed to store notification").WithError(err)
	}

	return s.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: fmt.Sprintf("Order %s update: %s", order.OrderID, order.Status),
		Content: fmt.Sprintf("Hi %s,\n\nYour order %s is now %s.\n", user.Name, order.OrderID, order.Status),
	})
}

// NotifyStockLevel implements NotificationService.
func (s *notificationService) NotifyStockLevel(ctx context.Context, productID uuid.UUID, remaining int) error {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return apperrors.NotFoundError("Product not found for stock notification").WithError(err)
	}

	kind := models.NotificationKindLowStock
	title := fmt.Sprintf("Low stock: %s (%d left)", product.Name, remaining)

	if remaining == 0 {
		kind = models.NotificationKindOutOfStock
		title = "Out of stock: " + product.Name
	}

	notification := &models.Notification{
		ID:     uuid.New(),
		Kind:   kind,
		Title:  title,
		Body:   fmt.Sprintf("Product %s has %d units remaining", product.ID, remaining),
		Status: models.NotificationStatusUnread,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return apperrors.DatabaseError("Failed to store notification").WithError(err)
	}

	return nil
}

// NotifyNewUser implements NotificationService.
func (s *notificationService) NotifyNewUser(ctx context.Context, user *models.User) error {
	notification := &models.Notification{
		ID:     uuid.New(),
		Kind:   models.NotificationKindNewUser,
		Title:  "New user registered",
		Body:   fmt.Sprintf("%s (%s) created an account", user.Name, user.Email),
		Status: models.NotificationStatusUnread,
		UserID: &user.ID,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return apperrors.DatabaseError("Failed to store notification").WithError(err)
	}

	return s.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: "Welcome!",
		Content: fmt.Sprintf("Hi %s,\n\nYour account is ready.\n", user.Name),
	})
}

// SendEmail implements NotificationService.
func (s *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) error {
	if err := s.email.Send(ctx, req); err != nil {
		return apperrors.ThirdPartyError("Failed to send email").WithError(err)
	}

	return nil
}

// ListNotifications implements NotificationService.
func (s *notificationService) ListNotifications(ctx context.Context, status models.NotificationStatus, page, size int) ([]*models.Notification, int, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	notifications, total, err := s.repo.ListNotifications(ctx, status, page, size)
	if err != nil {
		return nil, 0, apperrors.DatabaseError("Failed to fetch notifications").WithError(err)
	}

	return notifications, total, nil
}

// MarkRead implements NotificationService.
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return apperrors.NotFoundError("Notification not found").WithError(err)
	}

	return nil
}
