package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is one orderable menu item. Price is a plain number in the shop's
// currency; the storefront renders it with a "₹" prefix and no rounding.
type Product struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ShopID      uuid.UUID  `json:"shop_id" db:"shop_id"`
	CategoryID  *uuid.UUID `json:"category_id" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	ImageURL    *string    `json:"image_url" db:"image_url"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
