package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ReceiverName  string    `json:"receiver_name"`
	Area          string    `json:"area"`
	HouseNumber   string    `json:"house_number"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PinCode       string    `json:"pin_code"`
	Country       string    `json:"country,omitempty"`
	ContactNumber string    `json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateAddressRequest struct {
	ReceiverName  string `json:"receiver_name" validate:"required"`
	Area          string `json:"area" validate:"required"`
	HouseNumber   string `json:"house_number" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	PinCode       string `json:"pin_code" validate:"required"`
	Country       string `json:"country,omitempty"`
	ContactNumber string `json:"contact_number" validate:"required"`
}
