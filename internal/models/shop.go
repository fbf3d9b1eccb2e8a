package models

import (
	"time"

	"github.com/google/uuid"
)

// Branding holds the two storefront theme colors, stored as a JSONB column.
type Branding struct {
	Primary string `json:"primary,omitempty"`
	Accent  string `json:"accent,omitempty"`
}

// Shop is one tenant storefront. A shop claims one or more domains; among
// active shops a domain belongs to at most one of them (enforced by the
// storage layer).
type Shop struct {
	ID              uuid.UUID `json:"id" db:"id"`
	OwnerID         uuid.UUID `json:"owner_id" db:"owner_id"`
	Name            string    `json:"name" db:"name"`
	Slug            string    `json:"slug" db:"slug"`
	Domains         []string  `json:"domains" db:"domains"`
	Tagline         *string   `json:"tagline" db:"tagline"`
	DeliveryNote    *string   `json:"delivery_note" db:"delivery_note"`
	BusinessNote    *string   `json:"business_note" db:"business_note"`
	Branding        Branding  `json:"branding" db:"branding"`
	Services        []string  `json:"services" db:"services"`
	WhatsAppNumber  *string   `json:"whatsapp_number" db:"whatsapp_number"`
	MessageTemplate *string   `json:"message_template" db:"message_template"`
	Address         *string   `json:"address" db:"address"`
	BannerText      *string   `json:"banner_text" db:"banner_text"`
	BusinessHours   *string   `json:"business_hours" db:"business_hours"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	BusinessType    string    `json:"business_type" db:"business_type"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ValidBusinessTypes enumerates the storefront flavors the public page knows
// how to render.
var ValidBusinessTypes = map[string]bool{
	"juice":      true,
	"restaurant": true,
	"clothing":   true,
	"kitchen":    true,
	"grocery":    true,
}
