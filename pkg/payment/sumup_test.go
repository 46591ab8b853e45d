package payment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mdsweden/storefront-backend/internal/config"
	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/mdsweden/storefront-backend/pkg/payment"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSumUpServer fakes the token endpoint plus the given API routes.
func newSumUpServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"bearer","expires_in":3600}`))

			return
		}

		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		handler(w, r)
	}))
}

func TestSumUpCharge(t *testing.T) {
	ctx := t.Context()

	req := &models.PaymentRequest{
		UserID:      uuid.New(),
		OrderID:     "2026-4f9c21a-09-01",
		Amount:      215.5,
		Currency:    "SEK",
		Provider:    "sumup",
		Description: "Order 2026-4f9c21a-09-01",
	}

	t.Run("Success - Checkout Link Created", func(t *testing.T) {
		// Arrange
		var gotBody map[string]any

		server := newSumUpServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v0.1/checkouts", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"chk_789","status":"PENDING","amount":215.5,"currency":"SEK","checkout_url":"https://pay.sumup.com/b2c/chk_789"}`))
		})
		defer server.Close()

		provider := payment.NewSumUpProvider(&config.SumUp{
			APIURL:       server.URL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			MerchantCode: "M1234",
			PayToEmail:   "merchant@example.com",
			Timeout:      5 * time.Second,
		})

		// Act
		result, err := provider.Charge(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Pending)
		assert.Equal(t, "chk_789", result.ExternalID)
		assert.Equal(t, models.PaymentStatusPending, result.Status)
		assert.Equal(t, "https://pay.sumup.com/b2c/chk_789", result.RedirectURL)

		assert.Equal(t, req.OrderID, gotBody["checkout_reference"])
		assert.Equal(t, "merchant@example.com", gotBody["pay_to_email"])
		assert.Equal(t, "M1234", gotBody["merchant_code"])
	})

	t.Run("Failure - Checkout Rejected", func(t *testing.T) {
		// Arrange
		server := newSumUpServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"duplicate checkout_reference"}`))
		})
		defer server.Close()

		provider := payment.NewSumUpProvider(&config.SumUp{
			APIURL:       server.URL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Timeout:      5 * time.Second,
		})

		// Act
		result, err := provider.Charge(ctx, req)

		// Assert
		assert.Nil(t, result)
		assert.ErrorContains(t, err, "status 409")
	})
}

func TestSumUpRefund(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Full Refund", func(t *testing.T) {
		// Arrange
		server := newSumUpServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v0.1/me/refund/txn_123", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		defer server.Close()

		provider := payment.NewSumUpProvider(&config.SumUp{
			APIURL:       server.URL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Timeout:      5 * time.Second,
		})

		// Act
		result, err := provider.Refund(ctx, "txn_123", nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "txn_123", result.ExternalID)
		assert.Equal(t, models.PaymentStatusRefunded, result.Status)
	})
}
