package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses a shop admin can move an order through.
const (
	OrderStatusNew       = "new"
	OrderStatusPreparing = "preparing"
	OrderStatusCompleted = "completed"
)

// PaymentMethodCOD is the only payment method in the ordering flow.
const PaymentMethodCOD = "COD"

// Order records one placed order. Total equals the sum of its items at
// creation time; it is never recomputed afterwards.
type Order struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ShopID        uuid.UUID `json:"shop_id" db:"shop_id"`
	CustomerID    uuid.UUID `json:"customer_id" db:"customer_id"`
	Total         float64   `json:"total" db:"total"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	Paid          bool      `json:"paid" db:"paid"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ValidOrderStatus reports whether s is one of the admin-settable statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusPreparing, OrderStatusCompleted:
		return true
	}
	return false
}

// OrderWithCustomer is the admin order-list row, joining the customer snapshot
// the dashboard shows next to each order.
type OrderWithCustomer struct {
	Order
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
}
