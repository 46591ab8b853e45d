package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mdsweden/storefront-backend/internal/config"
	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/refund"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

type stripeProvider struct {
	webhookSecret string
}

// NewStripeProvider configures the global stripe key and returns the
// card-intent provider. Charges settle synchronously when a payment method
// token is supplied; without one the intent is returned pending with its
// client secret for browser-side confirmation.
func NewStripeProvider(cfg *config.Stripe) Provider {
	stripe.Key = cfg.APIKey

	return &stripeProvider{webhookSecret: cfg.WebhookSecret}
}

func (s *stripeProvider) Name() string { return "stripe" }

func (s *stripeProvider) Charge(ctx context.Context, req *models.PaymentRequest) (*Result, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(req.Amount)),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx

	if req.Token != "" {
		params.PaymentMethod = stripe.String(req.Token)
		params.Confirm = stripe.Bool(true)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}

	raw, _ := json.Marshal(intent)

	result := &Result{
		ExternalID:   intent.ID,
		ClientSecret: intent.ClientSecret,
		Raw:          raw,
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		result.Settled = true
		result.Status = models.PaymentStatusSucceeded
	case stripe.PaymentIntentStatusCanceled:
		result.Status = models.PaymentStatusFailed
	default:
		result.Pending = true
		result.Status = models.PaymentStatusPending
	}

	return result, nil
}

func (s *stripeProvider) Refund(ctx context.Context, externalID string, amount *float64) (*Result, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(externalID),
	}
	params.Context = ctx

	if amount != nil {
		params.Amount = stripe.Int64(toMinorUnits(*amount))
	}

	ref, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe refund: %w", err)
	}

	raw, _ := json.Marshal(ref)

	return &Result{
		ExternalID: ref.ID,
		Status:     models.PaymentStatusRefunded,
		Settled:    true,
		Raw:        raw,
	}, nil
}

// VerifyWebhookSignature validates a stripe webhook payload against the
// configured signing secret.
func (s *stripeProvider) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}

// Stripe counts in minor units, so 180.50 SEK goes over the wire as 18050.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
