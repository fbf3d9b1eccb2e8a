package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"

	"dukaan/internal/common"
	"dukaan/internal/models"
	"dukaan/internal/repositories"
	"dukaan/internal/storefront"
)

// ShopService is the admin shop editor: each save validates, persists the
// whole profile keyed on the owner, and invalidates the cached storefront.
type ShopService interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
	Save(ctx context.Context, ownerID uuid.UUID, req *SaveShopRequest) (*models.Shop, error)
}

type SaveShopRequest struct {
	Name            string          `json:"name" validate:"required"`
	Slug            string          `json:"slug"`
	Domains         []string        `json:"domains"`
	Tagline         string          `json:"tagline"`
	DeliveryNote    string          `json:"delivery_note"`
	BusinessNote    string          `json:"business_note"`
	Branding        models.Branding `json:"branding"`
	Services        []string        `json:"services"`
	WhatsAppNumber  string          `json:"whatsapp_number"`
	MessageTemplate string          `json:"message_template"`
	Address         string          `json:"address"`
	BannerText      string          `json:"banner_text"`
	BusinessHours   string          `json:"business_hours"`
	IsActive        bool            `json:"is_active"`
	BusinessType    string          `json:"business_type"`
}

type shopService struct {
	shopRepo    repositories.ShopRepository
	storefronts StorefrontService
}

func NewShopService(shopRepo repositories.ShopRepository, storefronts StorefrontService) ShopService {
	return &shopService{shopRepo: shopRepo, storefronts: storefronts}
}

// GetByOwner returns nil, nil before the owner's first save.
func (s *shopService) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByOwner(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) Save(ctx context.Context, ownerID uuid.UUID, req *SaveShopRequest) (*models.Shop, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	businessType := req.BusinessType
	if businessType == "" {
		businessType = storefront.DefaultBusinessType
	}
	if !models.ValidBusinessTypes[businessType] {
		return nil, errors.New("business_type must be one of: juice, restaurant, clothing, kitchen, grocery")
	}

	shopSlug := strings.TrimSpace(req.Slug)
	if shopSlug == "" {
		shopSlug = slug.Make(req.Name)
	} else {
		shopSlug = slug.Make(shopSlug)
	}

	// Fetch the existing profile first so a save replaces it in place; the
	// upsert is keyed on owner_id either way.
	existing, err := s.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	shop := &models.Shop{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Name:            strings.TrimSpace(req.Name),
		Slug:            shopSlug,
		Domains:         normalizeDomains(req.Domains),
		Tagline:         optional(req.Tagline),
		DeliveryNote:    optional(req.DeliveryNote),
		BusinessNote:    optional(req.BusinessNote),
		Branding:        req.Branding,
		Services:        trimAll(req.Services),
		WhatsAppNumber:  optional(req.WhatsAppNumber),
		MessageTemplate: optional(req.MessageTemplate),
		Address:         optional(req.Address),
		BannerText:      optional(req.BannerText),
		BusinessHours:   optional(req.BusinessHours),
		IsActive:        req.IsActive,
		BusinessType:    businessType,
	}
	if existing != nil {
		shop.ID = existing.ID
	}

	if err := s.shopRepo.Upsert(ctx, shop); err != nil {
		return nil, err
	}

	// Drop caches for the new domain set and, on a domain change, the old one.
	s.storefronts.InvalidateShop(ctx, shop)
	if existing != nil {
		s.storefronts.InvalidateShop(ctx, existing)
	}
	return shop, nil
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	seen := make(map[string]bool)
	for _, d := range domains {
		n := storefront.NormalizeHost(d)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func optional(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
