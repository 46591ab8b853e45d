package payment

import (
	"context"
	"encoding/json"

	"github.com/mdsweden/storefront-backend/internal/models"
)

// Result is the normalized outcome of a charge or refund, regardless of
// which provider produced it. Exactly one of Settled or Pending is true on
// success: card intents settle synchronously, redirect and checkout-link
// flows stay pending until the provider confirms out of band.
type Result struct {
	ExternalID   string
	Status       models.PaymentStatus
	Settled      bool
	Pending      bool
	ClientSecret string
	RedirectURL  string
	Raw          json.RawMessage
}

type Provider interface {
	Name() string
	Charge(ctx context.Context, req *models.PaymentRequest) (*Result, error)
	// Refund reverses a settled charge. A nil amount refunds the full
	// remaining amount where the provider supports that.
	Refund(ctx context.Context, externalID string, amount *float64) (*Result, error)
}
