package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	DiscountPct   float64    `json:"discount_pct"`
	Stock         int        `json:"stock"`
	CategoryID    uuid.UUID  `json:"category_id"`
	SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty"`
	Image         string     `json:"image,omitempty"`
	IsHighlight   bool       `json:"is_highlight"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CreateProductRequest struct {
	Name          string     `json:"name" validate:"required,min=2,max=200"`
	Description   string     `json:"description,omitempty"`
	Price         float64    `json:"price" validate:"required,gt=0"`
	DiscountPct   float64    `json:"discount_pct" validate:"gte=0,lte=100"`
	Stock         int        `json:"stock" validate:"gte=0"`
	CategoryID    uuid.UUID  `json:"category_id" validate:"required"`
	SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty"`
	Image         string     `json:"image,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	DiscountPct *float64 `json:"discount_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Image       *string  `json:"image,omitempty"`
	IsHighlight *bool    `json:"is_highlight,omitempty"`
}

type SearchProductRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}
