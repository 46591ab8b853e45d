package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/google/uuid"
)

type VoucherService interface {
	CreateVoucher(ctx context.Context, req *models.CreateVoucherRequest) (*models.Voucher, error)
	ApplyVoucher(ctx context.Context, req *models.ApplyVoucherRequest) (*models.ApplyVoucherResponse, error)
	// Resolve validates a code for checkout without consuming a use.
	Resolve(ctx context.Context, code string) (*models.Voucher, error)
	// Consume burns one use. Returns a Conflict AppError when a concurrent
	// checkout took the last use first.
	Consume(ctx context.Context, id uuid.UUID) error
	ListVouchers(ctx context.Context) ([]*models.Voucher, error)
	DeleteVoucher(ctx context.Context, id uuid.UUID) error
}

type voucherService struct {
	repo repository.VoucherRepository
}

func NewVoucherService(repo repository.VoucherRepository) VoucherService {
	return &voucherService{repo: repo}
}

func (s *voucherService) CreateVoucher(ctx context.Context, req *models.CreateVoucherRequest) (*models.Voucher, error) {
	if !req.ExpiryDate.After(time.Now()) {
		return nil, apperrors.BadRequestError("Expiry date must be in the future")
	}

	voucher := &models.Voucher{
		ID:            uuid.New(),
		Code:          req.Code,
		DiscountValue: req.DiscountValue,
		ExpiryDate:    req.ExpiryDate,
		UseLimit:      req.UseLimit,
	}

	if err := s.repo.CreateVoucher(ctx, voucher); err != nil {
		return nil, apperrors.DuplicateEntryError("Voucher code already exists").WithError(err)
	}

	return voucher, nil
}

func (s *voucherService) Resolve(ctx context.Context, code string) (*models.Voucher, error) {
	voucher, err := s.repo.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Voucher not found or no longer active").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to look up voucher").WithError(err)
	}

	if time.Now().After(voucher.ExpiryDate) {
		return nil, apperrors.VoucherExpiredError("Voucher has expired")
	}

	return voucher, nil
}

func (s *voucherService) ApplyVoucher(ctx context.Context, req *models.ApplyVoucherRequest) (*models.ApplyVoucherResponse, error) {
	voucher, err := s.Resolve(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	discounted := Round2(req.PurchaseAmount - voucher.DiscountValue)
	if discounted < 0 {
		discounted = 0
	}

	return &models.ApplyVoucherResponse{DiscountedAmount: discounted}, nil
}

func (s *voucherService) Consume(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Consume(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherExhausted) {
			return apperrors.ConflictError("Voucher has no uses left").WithError(err)
		}

		return apperrors.DatabaseError("Failed to consume voucher").WithError(err)
	}

	return nil
}

func (s *voucherService) ListVouchers(ctx context.Context) ([]*models.Voucher, error) {
	vouchers, err := s.repo.ListVouchers(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vouchers").WithError(err)
	}

	return vouchers, nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteVoucher(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundError("Voucher not found").WithError(err)
		}

		return apperrors.DatabaseError("Failed to delete voucher").WithError(err)
	}

	return nil
}
