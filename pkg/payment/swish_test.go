package payment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mdsweden/storefront-backend/internal/config"
	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/mdsweden/storefront-backend/pkg/payment"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwishCharge(t *testing.T) {
	ctx := t.Context()

	req := &models.PaymentRequest{
		UserID:      uuid.New(),
		OrderID:     "2026-4f9c21a-09-01",
		Amount:      215.5,
		Currency:    "sek",
		Provider:    "swish",
		Description: "Order 2026-4f9c21a-09-01",
		PayerAlias:  "46701234567",
	}

	t.Run("Success - Payment Request Created", func(t *testing.T) {
		// Arrange
		var gotBody map[string]any
		var gotInstructionID string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			gotInstructionID = strings.TrimPrefix(r.URL.Path, "/api/v1/paymentrequests/")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Location", r.URL.String())
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		provider := payment.NewSwishProvider(&config.Swish{
			APIURL:      server.URL + "/api/v1/paymentrequests/",
			PayeeAlias:  "1234679304",
			CallbackURL: "https://shop.example.com/api/v1/payments/swish/callback",
			Timeout:     5 * time.Second,
		})

		// Act
		result, err := provider.Charge(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Pending)
		assert.False(t, result.Settled)
		assert.Equal(t, models.PaymentStatusPending, result.Status)
		assert.Equal(t, gotInstructionID, result.ExternalID)
		assert.NotEmpty(t, result.RedirectURL)

		// Instruction ids are 32 uppercase hex characters, no dashes.
		assert.Len(t, gotInstructionID, 32)
		assert.Equal(t, strings.ToUpper(gotInstructionID), gotInstructionID)
		assert.NotContains(t, gotInstructionID, "-")

		assert.Equal(t, "1234679304", gotBody["payeeAlias"])
		assert.Equal(t, "46701234567", gotBody["payerAlias"])
		assert.Equal(t, "SEK", gotBody["currency"])
		assert.Equal(t, "215.50", gotBody["amount"])
	})

	t.Run("Failure - Rejected Payment Request", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		provider := payment.NewSwishProvider(&config.Swish{
			APIURL:  server.URL + "/api/v1/paymentrequests/",
			Timeout: 5 * time.Second,
		})

		// Act
		result, err := provider.Charge(ctx, req)

		// Assert
		assert.Nil(t, result)
		assert.ErrorContains(t, err, "status 422")
	})
}

func TestSwishRefund(t *testing.T) {
	provider := payment.NewSwishProvider(&config.Swish{Timeout: 5 * time.Second})

	result, err := provider.Refund(t.Context(), "ABC123", nil)

	assert.Nil(t, result)
	assert.Error(t, err)
}
