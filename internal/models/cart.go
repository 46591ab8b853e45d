package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem carries only the product reference and quantity. Prices are
// resolved from the live product at checkout, never from the cart.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type Cart struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Items     map[string]CartItem `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"   validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"   validate:"min=0"`
}

type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}
