package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mdsweden/storefront-backend/internal/config"
	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/google/uuid"
)

type swishProvider struct {
	cfg    *config.Swish
	client *http.Client
}

// NewSwishProvider returns the redirect-based provider. A charge registers a
// payment request with the Swish API and comes back pending; the payer
// approves it in their app and Swish reports the outcome to the configured
// callback URL.
func NewSwishProvider(cfg *config.Swish) Provider {
	return &swishProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *swishProvider) Name() string { return "swish" }

type swishPaymentRequest struct {
	PayeeAlias  string `json:"payeeAlias"`
	PayerAlias  string `json:"payerAlias,omitempty"`
	Currency    string `json:"currency"`
	CallbackURL string `json:"callbackUrl"`
	Amount      string `json:"amount"`
	Message     string `json:"message,omitempty"`
}

func (s *swishProvider) Charge(ctx context.Context, req *models.PaymentRequest) (*Result, error) {
	// Swish payment request ids are created by the caller: a 32 character
	// uppercase UUID without dashes.
	instructionID := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))

	body := swishPaymentRequest{
		PayeeAlias:  s.cfg.PayeeAlias,
		PayerAlias:  req.PayerAlias,
		Currency:    strings.ToUpper(req.Currency),
		CallbackURL: s.cfg.CallbackURL,
		Amount:      strconv.FormatFloat(req.Amount, 'f', 2, 64),
		Message:     req.Description,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal swish request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, s.cfg.APIURL+instructionID, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build swish request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("swish request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("swish payment request rejected: status %d: %s", resp.StatusCode, respBody)
	}

	raw, _ := json.Marshal(map[string]any{
		"instruction_id": instructionID,
		"location":       resp.Header.Get("Location"),
	})

	return &Result{
		ExternalID:  instructionID,
		Status:      models.PaymentStatusPending,
		Pending:     true,
		RedirectURL: resp.Header.Get("Location"),
		Raw:         raw,
	}, nil
}

// Swish settles through the callback, so there is no synchronous refund on
// the payment request itself.
func (s *swishProvider) Refund(ctx context.Context, externalID string, amount *float64) (*Result, error) {
	return nil, fmt.Errorf("swish: refunds are handled through the Swish merchant refund flow, not supported here")
}
