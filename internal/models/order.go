package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "Pending"
	OrderStatusApproved        OrderStatus = "Approved"
	OrderStatusDeclined        OrderStatus = "Declined"
	OrderStatusCancelled       OrderStatus = "Cancelled"
	OrderStatusShipped         OrderStatus = "Shipped"
	OrderStatusDeliveryDelayed OrderStatus = "Delivery Delayed"
	OrderStatusDelivered       OrderStatus = "Delivered"
)

// OrderItem is a snapshot taken at checkout; later product edits do not
// change what the customer was charged.
type OrderItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPrice      float64   `json:"unit_price"`
	Quantity       int       `json:"quantity"`
	DiscountAmount float64   `json:"discount_amount"`
	LineTotal      float64   `json:"line_total"`
}

type DeliverySlotSnapshot struct {
	SlotID     uuid.UUID `json:"slot_id"`
	Date       string    `json:"date"`
	TimePeriod string    `json:"time_period"`
	Charge     float64   `json:"charge"`
}

type Order struct {
	ID                   uuid.UUID            `json:"id"`
	OrderID              string               `json:"order_id"`
	UserID               uuid.UUID            `json:"user_id"`
	Items                []OrderItem          `json:"items"`
	TotalAmount          float64              `json:"total_amount"`
	VoucherID            *uuid.UUID           `json:"voucher_id,omitempty"`
	VoucherUsed          bool                 `json:"voucher_used"`
	DeliverySlot         DeliverySlotSnapshot `json:"delivery_slot"`
	AddressID            uuid.UUID            `json:"address_id"`
	PaymentID            string               `json:"payment_id,omitempty"`
	PaymentStatus        PaymentStatus        `json:"payment_status"`
	Status               OrderStatus          `json:"status"`
	ExpectedDeliveryDate time.Time            `json:"expected_delivery_date"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

type CreateOrderRequest struct {
	VoucherCode    string    `json:"voucher_code,omitempty"`
	DeliverySlotID uuid.UUID `json:"delivery_slot_id" validate:"required"`
	AddressID      uuid.UUID `json:"address_id" validate:"required"`
	PaymentMethod  string    `json:"payment_method" validate:"required,oneof=stripe swish sumup"`
	PaymentToken   string    `json:"payment_token,omitempty"`
	PayerAlias     string    `json:"payer_alias,omitempty"`

	// Set from the authenticated user, never from the request body.
	UserID uuid.UUID `json:"-"`
}

type OrderSummaryRequest struct {
	VoucherCode    string    `json:"voucher_code,omitempty"`
	DeliverySlotID uuid.UUID `json:"delivery_slot_id" validate:"required"`
	AddressID      uuid.UUID `json:"address_id" validate:"required"`

	UserID uuid.UUID `json:"-"`
}

// OrderSummary is the non-persisting preview of an order's pricing.
type OrderSummary struct {
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	TotalDiscount   float64     `json:"total_discount"`
	VoucherDiscount float64     `json:"voucher_discount"`
	DeliveryCharge  float64     `json:"delivery_charge"`
	Total           float64     `json:"total"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=Pending Approved Declined Cancelled Shipped 'Delivery Delayed' Delivered"`
}

type OrderResponse struct {
	Order *Order `json:"order"`

	// Set for redirect/async payment flows that still need client action.
	RedirectURL  string `json:"redirect_url,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}
