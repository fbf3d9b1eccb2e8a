package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dukaan/internal/caching"
	"dukaan/internal/models"
	"dukaan/internal/repositories"
	"dukaan/internal/storefront"
)

// StorefrontService resolves the tenant for a request host and serves the
// public storefront and catalog, going through the cache first.
type StorefrontService interface {
	// ResolveShop returns the active shop claiming the host, or nil when the
	// host is unclaimed.
	ResolveShop(ctx context.Context, host string) (*models.Shop, error)
	// GetStorefront returns the resolved view for the host, falling back to
	// the default identity when no shop matches.
	GetStorefront(ctx context.Context, host string) (storefront.View, error)
	// GetCatalog returns the shop's categories and active products.
	GetCatalog(ctx context.Context, shopID uuid.UUID) (*models.CatalogData, error)
	// InvalidateShop drops the shop's cached snapshot and catalog after an
	// admin edit.
	InvalidateShop(ctx context.Context, shop *models.Shop)
}

type storefrontService struct {
	shopRepo        repositories.ShopRepository
	categoryRepo    repositories.CategoryRepository
	productRepo     repositories.ProductRepository
	cache           caching.CacheService
	catalogTTL      time.Duration
	defaultWhatsApp string
	logger          *zap.Logger
}

func NewStorefrontService(
	shopRepo repositories.ShopRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	cache caching.CacheService,
	catalogTTL time.Duration,
	defaultWhatsApp string,
	logger *zap.Logger,
) StorefrontService {
	return &storefrontService{
		shopRepo:        shopRepo,
		categoryRepo:    categoryRepo,
		productRepo:     productRepo,
		cache:           cache,
		catalogTTL:      catalogTTL,
		defaultWhatsApp: defaultWhatsApp,
		logger:          logger,
	}
}

func (s *storefrontService) ResolveShop(ctx context.Context, host string) (*models.Shop, error) {
	domain := storefront.NormalizeHost(host)
	if domain == "" {
		return nil, nil
	}

	if cached, err := s.cache.GetShopByDomain(ctx, domain); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("shop cache read failed", zap.String("domain", domain), zap.Error(err))
	}

	shop, err := s.shopRepo.GetActiveByDomain(ctx, domain)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, nil
	}

	if err := s.cache.SetShopByDomain(ctx, domain, shop, s.catalogTTL); err != nil {
		s.logger.Warn("shop cache write failed", zap.String("domain", domain), zap.Error(err))
	}
	return shop, nil
}

// GetStorefront never fails: a resolver error degrades to the default view so
// the public page stays renderable.
func (s *storefrontService) GetStorefront(ctx context.Context, host string) (storefront.View, error) {
	shop, err := s.ResolveShop(ctx, host)
	if err != nil {
		s.logger.Warn("shop resolution failed, serving defaults", zap.String("host", host), zap.Error(err))
		return storefront.DefaultView(s.defaultWhatsApp), nil
	}
	return storefront.Resolve(shop, s.defaultWhatsApp), nil
}

func (s *storefrontService) GetCatalog(ctx context.Context, shopID uuid.UUID) (*models.CatalogData, error) {
	if cached, err := s.cache.GetCatalog(ctx, shopID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("catalog cache read failed", zap.String("shop_id", shopID.String()), zap.Error(err))
	}

	categories, err := s.categoryRepo.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListActive(ctx, shopID)
	if err != nil {
		return nil, err
	}

	catalog := &models.CatalogData{
		Categories: make([]models.Category, 0, len(categories)),
		Products:   make([]models.Product, 0, len(products)),
	}
	for _, c := range categories {
		catalog.Categories = append(catalog.Categories, *c)
	}
	for _, p := range products {
		catalog.Products = append(catalog.Products, *p)
	}

	if err := s.cache.SetCatalog(ctx, shopID, catalog, s.catalogTTL); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("shop_id", shopID.String()), zap.Error(err))
	}
	return catalog, nil
}

func (s *storefrontService) InvalidateShop(ctx context.Context, shop *models.Shop) {
	if shop == nil {
		return
	}
	if err := s.cache.InvalidateShopCache(ctx, shop.ID, shop.Domains); err != nil {
		s.logger.Warn("shop cache invalidation failed", zap.String("shop_id", shop.ID.String()), zap.Error(err))
	}
}
