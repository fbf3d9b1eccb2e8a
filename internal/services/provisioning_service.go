package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dukaan/internal/auth"
	"dukaan/internal/models"
	"dukaan/internal/repositories"
)

// ErrInvalidShopPayload marks a provisioning request rejected before any
// provider or store call; handlers answer it with a client error rather than
// a server one.
var ErrInvalidShopPayload = errors.New("email, password and shopName are required")

// ProvisioningService is the super-admin tenant registry: creating owner
// accounts with their shop, listing all tenants, and flipping or editing a
// tenant's registry fields.
type ProvisioningService interface {
	IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	CreateShop(ctx context.Context, req *CreateShopRequest) (*models.Shop, error)
	ListShops(ctx context.Context) ([]*models.Shop, error)
	// ToggleShop is last-write-wins: the final call of a sequence determines
	// the visible state.
	ToggleShop(ctx context.Context, shopID uuid.UUID, isActive bool) error
	UpdateShop(ctx context.Context, req *UpdateShopRequest) error
}

type CreateShopRequest struct {
	Email    string   `json:"email" validate:"required"`
	Password string   `json:"password" validate:"required"`
	ShopName string   `json:"shopName" validate:"required"`
	Slug     string   `json:"slug"`
	Domains  []string `json:"domains"`
}

type UpdateShopRequest struct {
	ShopID  uuid.UUID `json:"shopId" validate:"required"`
	Name    string    `json:"name" validate:"required"`
	Slug    string    `json:"slug" validate:"required"`
	Domains []string  `json:"domains"`
}

type provisioningService struct {
	shopRepo       repositories.ShopRepository
	superAdminRepo repositories.SuperAdminRepository
	provider       auth.Provider
	storefronts    StorefrontService
	logger         *zap.Logger
}

func NewProvisioningService(
	shopRepo repositories.ShopRepository,
	superAdminRepo repositories.SuperAdminRepository,
	provider auth.Provider,
	storefronts StorefrontService,
	logger *zap.Logger,
) ProvisioningService {
	return &provisioningService{
		shopRepo:       shopRepo,
		superAdminRepo: superAdminRepo,
		provider:       provider,
		storefronts:    storefronts,
		logger:         logger,
	}
}

func (s *provisioningService) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.superAdminRepo.IsSuperAdmin(ctx, userID)
}

func (s *provisioningService) CreateShop(ctx context.Context, req *CreateShopRequest) (*models.Shop, error) {
	if req.Email == "" || req.Password == "" || req.ShopName == "" {
		return nil, ErrInvalidShopPayload
	}

	ownerID, err := s.provider.CreateUser(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	shopSlug := req.Slug
	if shopSlug == "" {
		shopSlug = slug.Make(req.ShopName)
	}
	shop := &models.Shop{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         req.ShopName,
		Slug:         shopSlug,
		Domains:      normalizeDomains(req.Domains),
		IsActive:     true,
		BusinessType: "juice",
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		// The owner account exists but the shop row does not; surfacing the
		// error lets the super-admin retry the shop half.
		s.logger.Error("shop creation failed after owner provisioning",
			zap.String("owner_id", ownerID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("shop provisioned",
		zap.String("shop_id", shop.ID.String()),
		zap.String("slug", shop.Slug))
	return shop, nil
}

func (s *provisioningService) ListShops(ctx context.Context) ([]*models.Shop, error) {
	return s.shopRepo.List(ctx)
}

func (s *provisioningService) ToggleShop(ctx context.Context, shopID uuid.UUID, isActive bool) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.New("shop not found")
	}
	if err != nil {
		return err
	}
	if err := s.shopRepo.SetActive(ctx, shopID, isActive); err != nil {
		return err
	}
	s.storefronts.InvalidateShop(ctx, shop)
	return nil
}

func (s *provisioningService) UpdateShop(ctx context.Context, req *UpdateShopRequest) error {
	if req.Name == "" || req.Slug == "" {
		return errors.New("name and slug are required")
	}
	shop, err := s.shopRepo.GetByID(ctx, req.ShopID)
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.New("shop not found")
	}
	if err != nil {
		return err
	}
	if err := s.shopRepo.UpdateRegistry(ctx, req.ShopID, req.Name, slug.Make(req.Slug), normalizeDomains(req.Domains)); err != nil {
		return err
	}
	// Old domains may no longer belong to this shop; drop both snapshots.
	s.storefronts.InvalidateShop(ctx, shop)
	return nil
}
