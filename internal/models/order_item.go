package models

import "github.com/google/uuid"

// OrderItem snapshots a product's name and price at submission time. Rows are
// written once, together with their order, and never mutated; later catalog
// edits do not touch them.
type OrderItem struct {
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Qty       int       `json:"qty" db:"qty"`
}
