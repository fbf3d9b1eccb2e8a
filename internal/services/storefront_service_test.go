package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"dukaan/internal/models"
	"dukaan/internal/storefront"
)

// fakeCache is an in-memory stand-in for the Redis cache.
type fakeCache struct {
	shops    map[string]*models.Shop
	catalogs map[uuid.UUID]*models.CatalogData
	strings  map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		shops:    make(map[string]*models.Shop),
		catalogs: make(map[uuid.UUID]*models.CatalogData),
		strings:  make(map[string]string),
	}
}

func (f *fakeCache) GetShopByDomain(_ context.Context, domain string) (*models.Shop, error) {
	return f.shops[domain], nil
}

func (f *fakeCache) SetShopByDomain(_ context.Context, domain string, shop *models.Shop, _ time.Duration) error {
	f.shops[domain] = shop
	return nil
}

func (f *fakeCache) DeleteShopByDomain(_ context.Context, domain string) error {
	delete(f.shops, domain)
	return nil
}

func (f *fakeCache) GetCatalog(_ context.Context, shopID uuid.UUID) (*models.CatalogData, error) {
	return f.catalogs[shopID], nil
}

func (f *fakeCache) SetCatalog(_ context.Context, shopID uuid.UUID, catalog *models.CatalogData, _ time.Duration) error {
	f.catalogs[shopID] = catalog
	return nil
}

func (f *fakeCache) DeleteCatalog(_ context.Context, shopID uuid.UUID) error {
	delete(f.catalogs, shopID)
	return nil
}

func (f *fakeCache) InvalidateShopCache(_ context.Context, shopID uuid.UUID, domains []string) error {
	delete(f.catalogs, shopID)
	for _, d := range domains {
		delete(f.shops, d)
	}
	return nil
}

func (f *fakeCache) InvalidateAllCache(_ context.Context) error {
	f.shops = make(map[string]*models.Shop)
	f.catalogs = make(map[uuid.UUID]*models.CatalogData)
	f.strings = make(map[string]string)
	return nil
}

func (f *fakeCache) IsRateLimited(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	return false, nil
}

func (f *fakeCache) SetString(_ context.Context, key, value string, _ time.Duration) error {
	f.strings[key] = value
	return nil
}

func (f *fakeCache) GetString(_ context.Context, key string) (string, error) {
	return f.strings[key], nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.strings, key)
	return nil
}

type StorefrontServiceTestSuite struct {
	suite.Suite
	shopRepo     *mockShopRepo
	categoryRepo *mockCategoryRepo
	productRepo  *mockProductRepo
	cache        *fakeCache
	service      StorefrontService
	ctx          context.Context
}

func (s *StorefrontServiceTestSuite) SetupTest() {
	s.shopRepo = new(mockShopRepo)
	s.categoryRepo = new(mockCategoryRepo)
	s.productRepo = new(mockProductRepo)
	s.cache = newFakeCache()
	s.service = NewStorefrontService(
		s.shopRepo, s.categoryRepo, s.productRepo,
		s.cache, 2*time.Minute, "917988237504", zap.NewNop())
	s.ctx = context.Background()
}

func (s *StorefrontServiceTestSuite) TestResolveShopNormalizesHost() {
	shop := &models.Shop{ID: uuid.New(), Name: "Sharma Dhaba", Domains: []string{"sharma.example"}}
	s.shopRepo.On("GetActiveByDomain", s.ctx, "sharma.example").Return(shop, nil).Once()

	got, err := s.service.ResolveShop(s.ctx, "WWW.Sharma.Example")
	s.Require().NoError(err)
	s.Equal(shop.ID, got.ID)

	// Second resolve, with or without the www prefix, hits the cache.
	again, err := s.service.ResolveShop(s.ctx, "sharma.example")
	s.Require().NoError(err)
	s.Equal(shop.ID, again.ID)
	s.shopRepo.AssertExpectations(s.T())
}

func (s *StorefrontServiceTestSuite) TestUnclaimedHostGetsDefaultView() {
	s.shopRepo.On("GetActiveByDomain", s.ctx, "nobody.example").Return(nil, nil)

	view, err := s.service.GetStorefront(s.ctx, "nobody.example")
	s.Require().NoError(err)
	s.Equal(uuid.Nil, view.ShopID)
	s.Equal(storefront.DefaultShopName, view.Name)
	s.Equal("917988237504", view.WhatsAppNumber)
}

func (s *StorefrontServiceTestSuite) TestResolverFailureStillServesDefaults() {
	s.shopRepo.On("GetActiveByDomain", s.ctx, "down.example").Return(nil, assert.AnError)

	view, err := s.service.GetStorefront(s.ctx, "down.example")
	s.Require().NoError(err)
	s.Equal(storefront.DefaultShopName, view.Name)
}

func (s *StorefrontServiceTestSuite) TestGetCatalogCachesResult() {
	shopID := uuid.New()
	categories := []*models.Category{{ID: uuid.New(), ShopID: shopID, Name: "Juices"}}
	products := []*models.Product{{ID: uuid.New(), ShopID: shopID, Name: "Anar", Price: 60, IsActive: true}}
	s.categoryRepo.On("List", s.ctx, shopID).Return(categories, nil).Once()
	s.productRepo.On("ListActive", s.ctx, shopID).Return(products, nil).Once()

	catalog, err := s.service.GetCatalog(s.ctx, shopID)
	s.Require().NoError(err)
	s.Len(catalog.Categories, 1)
	s.Len(catalog.Products, 1)

	_, err = s.service.GetCatalog(s.ctx, shopID)
	s.Require().NoError(err)
	s.categoryRepo.AssertExpectations(s.T())
	s.productRepo.AssertExpectations(s.T())
}

func (s *StorefrontServiceTestSuite) TestInvalidateShopDropsSnapshotAndCatalog() {
	shop := &models.Shop{ID: uuid.New(), Domains: []string{"sharma.example"}}
	s.cache.shops["sharma.example"] = shop
	s.cache.catalogs[shop.ID] = &models.CatalogData{}

	s.service.InvalidateShop(s.ctx, shop)

	s.Nil(s.cache.shops["sharma.example"])
	s.Nil(s.cache.catalogs[shop.ID])
}

func TestStorefrontServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontServiceTestSuite))
}
