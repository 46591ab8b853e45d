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

type VoucherRepository interface {
	CreateVoucher(ctx context.Context, voucher *models.Voucher) error
	GetActiveByCode(ctx context.Context, code string) (*models.Voucher, error)
	Consume(ctx context.Context, id uuid.UUID) error
	ListVouchers(ctx context.Context) ([]*models.Voucher, error)
	DeleteVoucher(ctx context.Context, id uuid.UUID) error
}

type voucherRepository struct {
	DB *sql.DB
}

func NewVoucherRepo(db *sql.DB) VoucherRepository {
	return &voucherRepository{DB: db}
}

func (r *voucherRepository) CreateVoucher(ctx context.Context, voucher *models.Voucher) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO vouchers (id, code, discount_value, expiry_date, use_limit, is_active)
		VALUES ($1, $2, $3, $4, $5, $5 > 0)
		RETURNING is_active, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, voucher.ID, voucher.Code, voucher.DiscountValue, voucher.ExpiryDate, voucher.UseLimit).Scan(&voucher.IsActive, &voucher.CreatedAt, &voucher.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("voucher code %q: %w", voucher.Code, err)
		}

		return fmt.Errorf("failed to insert voucher: %w", err)
	}

	return nil
}

func (r *voucherRepository) GetActiveByCode(ctx context.Context, code string) (*models.Voucher, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	voucher := &models.Voucher{}

	query := `
		SELECT id, code, discount_value, expiry_date, use_limit, is_active, created_at, updated_at
		FROM vouchers
		WHERE code = $1 AND is_active
	`

	err := r.DB.QueryRowContext(dbCtx, query, code).Scan(&voucher.ID, &voucher.Code, &voucher.DiscountValue, &voucher.ExpiryDate, &voucher.UseLimit, &voucher.IsActive, &voucher.CreatedAt, &voucher.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return voucher, nil
}

// Consume takes one use off the voucher and recomputes is_active in the
// same statement, guarded on the voucher still having uses left. Two
// concurrent consumers of a use_limit=1 voucher cannot both win: the loser
// matches zero rows and gets ErrVoucherExhausted.
func (r *voucherRepository) Consume(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE vouchers
		SET use_limit = use_limit - 1, is_active = (use_limit - 1 > 0), updated_at = NOW()
		WHERE id = $1 AND is_active AND use_limit > 0
	`

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return fmt.Errorf("failed to consume voucher: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return ErrVoucherExhausted
	}

	return nil
}

func (r *voucherRepository) ListVouchers(ctx context.Context) ([]*models.Voucher, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, code, discount_value, expiry_date, use_limit, is_active, created_at, updated_at
		FROM vouchers
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	defer rows.Close()

	var vouchers []*models.Voucher

	for rows.Next() {
		voucher := &models.Voucher{}

		err := rows.Scan(&voucher.ID, &voucher.Code, &voucher.DiscountValue, &voucher.ExpiryDate, &voucher.UseLimit, &voucher.IsActive, &voucher.CreatedAt, &voucher.UpdatedAt)
		if err != nil {
			return nil, err
		}

		vouchers = append(vouchers, voucher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vouchers, nil
}

func (r *voucherRepository) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete voucher: %w", err)
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
