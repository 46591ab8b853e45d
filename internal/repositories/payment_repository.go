package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/mdsweden/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetPaymentByExternalID(ctx context.Context, externalID string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error
	UpdateOrderID(ctx context.Context, id uuid.UUID, orderID string) error
	ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, user_id, order_id, provider, amount, currency, external_id, status, raw_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, payment.ID, payment.UserID, payment.OrderID, payment.Provider, payment.Amount, payment.Currency, payment.ExternalID, payment.Status, payment.RawDetails).Scan(&payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, order_id, provider, amount, currency, external_id, status, raw_details, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	return r.scanPayment(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *paymentRepository) GetPaymentByExternalID(ctx context.Context, externalID string) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, order_id, provider, amount, currency, external_id, status, raw_details, created_at, updated_at
		FROM payments
		WHERE external_id = $1
	`

	return r.scanPayment(r.DB.QueryRowContext(dbCtx, query, externalID))
}

func (r *paymentRepository) scanPayment(row *sql.Row) (*models.Payment, error) {
	payment := &models.Payment{}

	err := row.Scan(&payment.ID, &payment.UserID, &payment.OrderID, &payment.Provider, &payment.Amount, &payment.Currency, &payment.ExternalID, &payment.Status, &payment.RawDetails, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *paymentRepository) UpdateOrderID(ctx context.Context, id uuid.UUID, orderID string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE payments SET order_id = $1, updated_at = NOW() WHERE id = $2`, orderID, id)
	if err != nil {
		return fmt.Errorf("failed to update payment order id: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *paymentRepository) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, order_id, provider, amount, currency, external_id, status, raw_details, created_at, updated_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	defer rows.Close()

	var payments []*models.Payment

	for rows.Next() {
		payment := &models.Payment{}

		err := rows.Scan(&payment.ID, &payment.UserID, &payment.OrderID, &payment.Provider, &payment.Amount, &payment.Currency, &payment.ExternalID, &payment.Status, &payment.RawDetails, &payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
