package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is keyed by phone number. Every order placement upserts the row,
// so name and address are last-write-wins.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Phone     string    `json:"phone" db:"phone"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
