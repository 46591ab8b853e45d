package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mdsweden/storefront-backend/internal/config"
	"github.com/mdsweden/storefront-backend/internal/models"
	"golang.org/x/oauth2/clientcredentials"
)

type sumUpProvider struct {
	cfg    *config.SumUp
	client *http.Client
}

// NewSumUpProvider returns the checkout-link provider. Charges create a
// hosted checkout the customer completes later, so results always come back
// pending with a redirect URL. OAuth2 client-credentials tokens are fetched
// and refreshed by the underlying transport.
func NewSumUpProvider(cfg *config.SumUp) Provider {
	oauthCfg := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.APIURL + "/token",
	}

	client := oauthCfg.Client(context.Background())
	client.Timeout = cfg.Timeout

	return &sumUpProvider{cfg: cfg, client: client}
}

func (s *sumUpProvider) Name() string { return "sumup" }

type sumUpCheckoutRequest struct {
	CheckoutReference string  `json:"checkout_reference"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	PayToEmail        string  `json:"pay_to_email"`
	Description       string  `json:"description,omitempty"`
	MerchantCode      string  `json:"merchant_code"`
	RedirectURL       string  `json:"redirect_url,omitempty"`
}

type sumUpCheckoutResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CheckoutURL string  `json:"checkout_url"`
}

func (s *sumUpProvider) Charge(ctx context.Context, req *models.PaymentRequest) (*Result, error) {
	body := sumUpCheckoutRequest{
		CheckoutReference: req.OrderID,
		Amount:            req.Amount,
		Currency:          req.Currency,
		PayToEmail:        s.cfg.PayToEmail,
		Description:       req.Description,
		MerchantCode:      s.cfg.MerchantCode,
		RedirectURL:       s.cfg.RedirectURL,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal sumup request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL+"/v0.1/checkouts", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build sumup request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sumup request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sumup response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("sumup checkout rejected: status %d: %s", resp.StatusCode, respBody)
	}

	var checkout sumUpCheckoutResponse
	if err := json.Unmarshal(respBody, &checkout); err != nil {
		return nil, fmt.Errorf("decode sumup response: %w", err)
	}

	return &Result{
		ExternalID:  checkout.ID,
		Status:      models.PaymentStatusPending,
		Pending:     true,
		RedirectURL: checkout.CheckoutURL,
		Raw:         respBody,
	}, nil
}

func (s *sumUpProvider) Refund(ctx context.Context, externalID string, amount *float64) (*Result, error) {
	body := map[string]any{}
	if amount != nil {
		body["amount"] = *amount
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal sumup refund: %w", err)
	}

	url := fmt.Sprintf("%s/v0.1/me/refund/%s", s.cfg.APIURL, externalID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build sumup refund request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sumup refund failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("sumup refund rejected: status %d: %s", resp.StatusCode, respBody)
	}

	return &Result{
		ExternalID: externalID,
		Status:     models.PaymentStatusRefunded,
		Settled:    true,
		Raw:        respBody,
	}, nil
}
