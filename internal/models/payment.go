package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	OrderID    string          `json:"order_id,omitempty"`
	Provider   string          `json:"provider"`
	Amount     float64         `json:"amount"`
	Currency   string          `json:"currency"`
	ExternalID string          `json:"external_id"`
	Status     PaymentStatus   `json:"status"`
	RawDetails json.RawMessage `json:"raw_details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type PaymentRequest struct {
	UserID      uuid.UUID `json:"-"`
	OrderID     string    `json:"order_id,omitempty"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Currency    string    `json:"currency,omitempty"`
	Provider    string    `json:"provider" validate:"required,oneof=stripe swish sumup"`
	Description string    `json:"description,omitempty"`

	// Provider-specific payload.
	Token      string `json:"token,omitempty"`       // stripe payment method token
	PayerAlias string `json:"payer_alias,omitempty"` // swish payer number
}

type PaymentResponse struct {
	Payment      *Payment `json:"payment"`
	Settled      bool     `json:"settled"`
	Pending      bool     `json:"pending"`
	ClientSecret string   `json:"client_secret,omitempty"`
	RedirectURL  string   `json:"redirect_url,omitempty"`
}

type RefundRequest struct {
	PaymentID uuid.UUID `json:"payment_id" validate:"required"`
	// Nil means provider-default, which refunds the full remaining amount.
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
}
