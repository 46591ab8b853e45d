package service

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/metrics"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/mdsweden/storefront-backend/pkg/payment"
	"github.com/google/uuid"
)

type PaymentService interface {
	// CreatePayment charges through the requested provider and records the
	// attempt. Failed charges are recorded too and surface as a 402.
	CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error)
	RefundPayment(ctx context.Context, req *models.RefundRequest) (*models.Payment, error)
	// UpdateOrderID repoints a recorded payment at a regenerated order
	// number after an order number collision.
	UpdateOrderID(ctx context.Context, id uuid.UUID, orderID string) error
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (payment.Event, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	orderRepo repository.OrderRepository
	providers map[string]payment.Provider
	verifier  WebhookVerifier
}

// WebhookVerifier checks a provider webhook signature. The stripe provider
// implements it; redirect providers confirm through their own callbacks.
type WebhookVerifier interface {
	VerifyWebhookSignature(payload []byte, signature string) (payment.Event, error)
}

func NewPaymentService(repo repository.PaymentRepository, orderRepo repository.OrderRepository, providers map[string]payment.Provider, verifier WebhookVerifier) PaymentService {
	return &paymentService{repo: repo, orderRepo: orderRepo, providers: providers, verifier: verifier}
}

// CreatePayment implements PaymentService.
func (s *paymentService) CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	provider, ok := s.providers[req.Provider]
	if !ok {
		return nil, apperrors.BadRequestError("Unknown payment provider: " + req.Provider)
	}

	result, err := provider.Charge(ctx, req)
	if err != nil {
		metrics.PaymentAttempts.WithLabelValues(req.Provider, "failed").Inc()

		// Record the failed attempt before surfacing the error.
		failed := &models.Payment{
			ID:       uuid.New(),
			UserID:   req.UserID,
			OrderID:  req.OrderID,
			Provider: req.Provider,
			Amount:   req.Amount,
			Currency: req.Currency,
			Status:   models.PaymentStatusFailed,
		}
		_ = s.repo.CreatePayment(ctx, failed)

		return nil, apperrors.PaymentFailedError("Payment was declined by the provider").WithError(err)
	}

	outcome := "pending"
	if result.Settled {
		outcome = "succeeded"
	}

	metrics.PaymentAttempts.WithLabelValues(req.Provider, outcome).Inc()

	record := &models.Payment{
		ID:         uuid.New(),
		UserID:     req.UserID,
		OrderID:    req.OrderID,
		Provider:   req.Provider,
		Amount:     req.Amount,
		Currency:   req.Currency,
		ExternalID: result.ExternalID,
		Status:     result.Status,
		RawDetails: result.Raw,
	}

	if err := s.repo.CreatePayment(ctx, record); err != nil {
		return nil, apperrors.DatabaseError("Failed to record payment").WithError(err)
	}

	return &models.PaymentResponse{
		Payment:      record,
		Settled:      result.Settled,
		Pending:      result.Pending,
		ClientSecret: result.ClientSecret,
		RedirectURL:  result.RedirectURL,
	}, nil
}

// RefundPayment implements PaymentService.
func (s *paymentService) RefundPayment(ctx context.Context, req *models.RefundRequest) (*models.Payment, error) {
	record, err := s.repo.GetPaymentByID(ctx, req.PaymentID)
	if err != nil {
		return nil, apperrors.NotFoundError("Payment not found").WithError(err)
	}

	if record.Status != models.PaymentStatusSucceeded {
		return nil, apperrors.ConflictError("Only settled payments can be refunded")
	}

	provider, ok := s.providers[record.Provider]
	if !ok {
		return nil, apperrors.InternalError("Payment provider no longer configured: " + record.Provider)
	}

	if _, err := provider.Refund(ctx, record.ExternalID, req.Amount); err != nil {
		return nil, apperrors.ThirdPartyError("Refund was rejected by the provider").WithError(err)
	}

	if err := s.repo.UpdateStatus(ctx, record.ID, models.PaymentStatusRefunded); err != nil {
		return nil, apperrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	record.Status = models.PaymentStatusRefunded

	return record, nil
}

// UpdateOrderID implements PaymentService.
func (s *paymentService) UpdateOrderID(ctx context.Context, id uuid.UUID, orderID string) error {
	if err := s.repo.UpdateOrderID(ctx, id, orderID); err != nil {
		return apperrors.DatabaseError("Failed to update payment order id").WithError(err)
	}

	return nil
}

// GetPaymentByID implements PaymentService.
func (s *paymentService) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	record, err := s.repo.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Payment not found").WithError(err)
	}

	return record, nil
}

// ListPaymentsByUser implements PaymentService.
func (s *paymentService) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	payments, err := s.repo.ListPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch payments").WithError(err)
	}

	return payments, nil
}

// ProcessWebhook implements PaymentService. Settlement events flip both the
// payment row and the order it paid for.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (payment.Event, error) {
	event, err := s.verifier.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return payment.Event{}, apperrors.ThirdPartyError("Webhook signature verification failed").WithError(err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		if err := s.settleByExternalID(ctx, event.Data.Object, "id", models.PaymentStatusSucceeded); err != nil {
			return event, err
		}

	case "payment_intent.payment_failed":
		if err := s.settleByExternalID(ctx, event.Data.Object, "id", models.PaymentStatusFailed); err != nil {
			return event, err
		}

	case "charge.refunded":
		if err := s.settleByExternalID(ctx, event.Data.Object, "payment_intent", models.PaymentStatusRefunded); err != nil {
			return event, err
		}
	}

	return event, nil
}

func (s *paymentService) settleByExternalID(ctx context.Context, object map[string]any, idField string, status models.PaymentStatus) error {
	externalID, ok := object[idField].(string)
	if !ok || externalID == "" {
		return apperrors.ThirdPartyError("Missing payment intent ID in webhook")
	}

	record, err := s.repo.GetPaymentByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundError("Payment not found for webhook").WithError(err)
		}

		return apperrors.DatabaseError("Failed to look up payment").WithError(err)
	}

	if err := s.repo.UpdateStatus(ctx, record.ID, status); err != nil {
		return apperrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	if record.OrderID != "" {
		order, err := s.orderRepo.GetOrderByOrderID(ctx, record.OrderID)
		if err == nil {
			_ = s.orderRepo.UpdatePaymentStatus(ctx, order.ID, status)
		}
	}

	return nil
}
