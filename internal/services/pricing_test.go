package service_test

import (
	"testing"

	"github.com/mdsweden/storefront-backend/internal/models"
	service "github.com/mdsweden/storefront-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPriceLine(t *testing.T) {
	pricing := service.NewPricingEngine()

	tests := []struct {
		name          string
		price         float64
		discountPct   float64
		quantity      int
		wantDiscount  float64
		wantLineTotal float64
	}{
		{
			name:          "no discount",
			price:         50,
			discountPct:   0,
			quantity:      3,
			wantDiscount:  0,
			wantLineTotal: 150,
		},
		{
			// The per-unit discount is rounded before multiplying by the
			// quantity, so the line total is 2 * 90.00, not 180.00 minus a
			// recomputed discount.
			name:          "percentage discount rounds per unit",
			price:         100,
			discountPct:   10,
			quantity:      2,
			wantDiscount:  20,
			wantLineTotal: 180,
		},
		{
			name:          "fractional unit discount",
			price:         19.99,
			discountPct:   25,
			quantity:      3,
			wantDiscount:  15,
			wantLineTotal: 44.97,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			product := &models.Product{
				ID:          uuid.New(),
				Name:        "Test Product",
				Price:       tc.price,
				DiscountPct: tc.discountPct,
				Stock:       100,
			}

			line := pricing.PriceLine(product, tc.quantity)

			assert.Equal(t, product.ID, line.ProductID)
			assert.Equal(t, tc.price, line.UnitPrice)
			assert.Equal(t, tc.quantity, line.Quantity)
			assert.InDelta(t, tc.wantDiscount, line.DiscountAmount, 0.001)
			assert.InDelta(t, tc.wantLineTotal, line.LineTotal, 0.001)
		})
	}
}

func TestTotal(t *testing.T) {
	pricing := service.NewPricingEngine()

	items := []models.OrderItem{
		{LineTotal: 180},
		{LineTotal: 45.50},
	}

	t.Run("items plus delivery minus voucher", func(t *testing.T) {
		total := pricing.Total(items, 20, 30)
		assert.InDelta(t, 215.50, total, 0.001)
	})

	t.Run("voucher larger than the items still pays delivery", func(t *testing.T) {
		total := pricing.Total(items, 20, 500)
		assert.Equal(t, 20.0, total)
	})

	t.Run("voucher exceeds items by less than delivery", func(t *testing.T) {
		total := pricing.Total([]models.OrderItem{{LineTotal: 20}}, 20, 30)
		assert.Equal(t, 20.0, total)
	})

	t.Run("no items", func(t *testing.T) {
		total := pricing.Total(nil, 20, 0)
		assert.Equal(t, 20.0, total)
	})
}

func TestSubtotal(t *testing.T) {
	pricing := service.NewPricingEngine()

	items := []models.OrderItem{
		{UnitPrice: 100, Quantity: 2, DiscountAmount: 20, LineTotal: 180},
		{UnitPrice: 50, Quantity: 1, DiscountAmount: 0, LineTotal: 50},
	}

	subtotal, totalDiscount := pricing.Subtotal(items)

	assert.InDelta(t, 250, subtotal, 0.001)
	assert.InDelta(t, 20, totalDiscount, 0.001)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.13, service.Round2(0.125))
	assert.Equal(t, -0.13, service.Round2(-0.125))
	assert.Equal(t, 10.0, service.Round2(10))
}
