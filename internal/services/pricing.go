package service

import (
	"math"

	"github.com/mdsweden/storefront-backend/internal/models"
)

// PricingEngine turns live product rows into priced order lines. All
// rounding happens here, in one place, half away from zero to 2 decimals.
type PricingEngine struct{}

func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

// PriceLine snapshots a product into an order line. The per-unit discount is
// rounded before it is multiplied by the quantity, so a 10% discount on a
// 100.00 product at quantity 2 yields a line total of 180.00.
func (p *PricingEngine) PriceLine(product *models.Product, quantity int) models.OrderItem {
	unitDiscount := Round2(product.Price * product.DiscountPct / 100)
	lineTotal := Round2((product.Price - unitDiscount) * float64(quantity))

	return models.OrderItem{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPrice:      product.Price,
		Quantity:       quantity,
		DiscountAmount: Round2(unitDiscount * float64(quantity)),
		LineTotal:      lineTotal,
	}
}

// Total folds priced lines, a voucher discount and a delivery charge into
// the amount to collect. The voucher discounts the goods only: it is clamped
// at zero before the delivery charge is added, so a voucher larger than the
// cart never eats into the delivery fee.
func (p *PricingEngine) Total(items []models.OrderItem, deliveryCharge, voucherDiscount float64) float64 {
	var sum float64
	for _, item := range items {
		sum += item.LineTotal
	}

	discounted := Round2(sum - voucherDiscount)
	if discounted < 0 {
		discounted = 0
	}

	return Round2(discounted + deliveryCharge)
}

// Subtotal is the pre-discount value of the priced lines.
func (p *PricingEngine) Subtotal(items []models.OrderItem) (subtotal, totalDiscount float64) {
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
		totalDiscount += item.DiscountAmount
	}

	return Round2(subtotal), Round2(totalDiscount)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
