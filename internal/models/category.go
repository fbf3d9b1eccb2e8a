package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups a shop's products on the menu. Deleting a category does not
// delete its products; their category reference is cleared instead.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ShopID    uuid.UUID `json:"shop_id" db:"shop_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
