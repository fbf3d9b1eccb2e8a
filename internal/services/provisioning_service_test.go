package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"dukaan/internal/models"
)

type ProvisioningServiceTestSuite struct {
	suite.Suite
	shopRepo    *mockShopRepo
	adminRepo   *mockSuperAdminRepo
	provider    *mockAuthProvider
	storefronts *mockStorefrontService
	service     ProvisioningService
	ctx         context.Context
}

func (s *ProvisioningServiceTestSuite) SetupTest() {
	s.shopRepo = new(mockShopRepo)
	s.adminRepo = new(mockSuperAdminRepo)
	s.provider = new(mockAuthProvider)
	s.storefronts = new(mockStorefrontService)
	s.service = NewProvisioningService(s.shopRepo, s.adminRepo, s.provider, s.storefronts, zap.NewNop())
	s.ctx = context.Background()
}

func (s *ProvisioningServiceTestSuite) TestCreateShopProvisionsOwnerFirst() {
	ownerID := uuid.New()
	s.provider.On("CreateUser", s.ctx, "owner@example.com", "secret123").Return(ownerID, nil)
	s.shopRepo.On("Create", s.ctx, mock.MatchedBy(func(shop *models.Shop) bool {
		return shop.OwnerID == ownerID && shop.IsActive && shop.Slug == "sharma-dhaba"
	})).Return(nil)

	shop, err := s.service.CreateShop(s.ctx, &CreateShopRequest{
		Email:    "owner@example.com",
		Password: "secret123",
		ShopName: "Sharma Dhaba",
		Domains:  []string{"www.sharma.example"},
	})

	s.Require().NoError(err)
	s.Equal(ownerID, shop.OwnerID)
	s.Equal([]string{"sharma.example"}, shop.Domains)
}

func (s *ProvisioningServiceTestSuite) TestCreateShopRejectsMissingFields() {
	_, err := s.service.CreateShop(s.ctx, &CreateShopRequest{Email: "a@b.c"})
	s.ErrorIs(err, ErrInvalidShopPayload)
	s.provider.AssertNotCalled(s.T(), "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ProvisioningServiceTestSuite) TestToggleShopInvalidatesCache() {
	shop := &models.Shop{ID: uuid.New(), Domains: []string{"sharma.example"}}
	s.shopRepo.On("GetByID", s.ctx, shop.ID).Return(shop, nil)
	s.shopRepo.On("SetActive", s.ctx, shop.ID, false).Return(nil)
	s.storefronts.On("InvalidateShop", s.ctx, shop).Return()

	s.NoError(s.service.ToggleShop(s.ctx, shop.ID, false))
	s.storefronts.AssertExpectations(s.T())
}

func (s *ProvisioningServiceTestSuite) TestToggleShopSequenceLastWriteWins() {
	shop := &models.Shop{ID: uuid.New()}
	s.shopRepo.On("GetByID", s.ctx, shop.ID).Return(shop, nil)
	s.shopRepo.On("SetActive", s.ctx, shop.ID, false).Return(nil).Once()
	s.shopRepo.On("SetActive", s.ctx, shop.ID, true).Return(nil).Once()
	s.storefronts.On("InvalidateShop", s.ctx, shop).Return()

	s.NoError(s.service.ToggleShop(s.ctx, shop.ID, false))
	s.NoError(s.service.ToggleShop(s.ctx, shop.ID, true))
	s.shopRepo.AssertExpectations(s.T())
}

func (s *ProvisioningServiceTestSuite) TestToggleUnknownShop() {
	id := uuid.New()
	s.shopRepo.On("GetByID", s.ctx, id).Return(nil, pgx.ErrNoRows)
	s.EqualError(s.service.ToggleShop(s.ctx, id, true), "shop not found")
}

func (s *ProvisioningServiceTestSuite) TestUpdateShopRegistry() {
	shop := &models.Shop{ID: uuid.New(), Domains: []string{"old.example"}}
	s.shopRepo.On("GetByID", s.ctx, shop.ID).Return(shop, nil)
	s.shopRepo.On("UpdateRegistry", s.ctx, shop.ID, "New Name", "new-name", []string{"new.example"}).Return(nil)
	s.storefronts.On("InvalidateShop", s.ctx, shop).Return()

	err := s.service.UpdateShop(s.ctx, &UpdateShopRequest{
		ShopID:  shop.ID,
		Name:    "New Name",
		Slug:    "New Name",
		Domains: []string{"WWW.New.Example"},
	})
	s.NoError(err)
	s.shopRepo.AssertExpectations(s.T())
}

func (s *ProvisioningServiceTestSuite) TestCreateShopSurfacesProviderError() {
	s.provider.On("CreateUser", s.ctx, "owner@example.com", "secret123").
		Return(uuid.Nil, errors.New("email already registered"))

	_, err := s.service.CreateShop(s.ctx, &CreateShopRequest{
		Email:    "owner@example.com",
		Password: "secret123",
		ShopName: "X",
	})
	s.EqualError(err, "email already registered")
	s.shopRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func TestProvisioningServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProvisioningServiceTestSuite))
}
