package models

import (
	"time"

	"github.com/google/uuid"
)

// Voucher invariant: IsActive == (UseLimit > 0). The repository maintains it
// inside the same conditional update that consumes a use.
type Voucher struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	DiscountValue float64   `json:"discount_value"`
	ExpiryDate    time.Time `json:"expiry_date"`
	UseLimit      int       `json:"use_limit"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateVoucherRequest struct {
	Code          string    `json:"code" validate:"required,min=3,max=50"`
	DiscountValue float64   `json:"discount_value" validate:"required,gt=0"`
	ExpiryDate    time.Time `json:"expiry_date" validate:"required"`
	UseLimit      int       `json:"use_limit" validate:"required,min=1"`
}

type ApplyVoucherRequest struct {
	Code           string  `json:"code" validate:"required"`
	PurchaseAmount float64 `json:"purchase_amount" validate:"required,gt=0"`
}

type ApplyVoucherResponse struct {
	DiscountedAmount float64 `json:"discounted_amount"`
}
