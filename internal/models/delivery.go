package models

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryType string

const (
	DeliveryTypeMorning     DeliveryType = "Morning Delivery"
	DeliveryTypeExpressI    DeliveryType = "Express Delivery I"
	DeliveryTypeExpressII   DeliveryType = "Express Delivery II"
	DeliveryTypeFixedTime   DeliveryType = "Fixed Time Delivery"
	DeliveryTypePreMidnight DeliveryType = "Pre-Midnight Delivery"
	DeliveryTypeFree        DeliveryType = "Free Delivery"
)

type DeliverySlot struct {
	ID             uuid.UUID    `json:"id"`
	DeliveryType   DeliveryType `json:"delivery_type"`
	Date           time.Time    `json:"date"`
	TimePeriod     string       `json:"time_period"`
	DeliveryCharge float64      `json:"delivery_charge"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type CreateDeliverySlotRequest struct {
	DeliveryType   DeliveryType `json:"delivery_type" validate:"required,oneof='Morning Delivery' 'Express Delivery I' 'Express Delivery II' 'Fixed Time Delivery' 'Pre-Midnight Delivery' 'Free Delivery'"`
	Date           time.Time    `json:"date" validate:"required"`
	TimePeriod     string       `json:"time_period" validate:"required"`
	DeliveryCharge float64      `json:"delivery_charge" validate:"gte=0"`
}
