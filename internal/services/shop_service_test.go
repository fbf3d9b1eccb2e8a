package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"dukaan/internal/models"
)

type ShopServiceTestSuite struct {
	suite.Suite
	shopRepo    *mockShopRepo
	storefronts *mockStorefrontService
	service     ShopService
	ctx         context.Context
	ownerID     uuid.UUID
}

func (s *ShopServiceTestSuite) SetupTest() {
	s.shopRepo = new(mockShopRepo)
	s.storefronts = new(mockStorefrontService)
	s.service = NewShopService(s.shopRepo, s.storefronts)
	s.ctx = context.Background()
	s.ownerID = uuid.New()
}

func (s *ShopServiceTestSuite) TestSaveRequiresName() {
	_, err := s.service.Save(s.ctx, s.ownerID, &SaveShopRequest{})
	s.Error(err)
	s.shopRepo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *ShopServiceTestSuite) TestSaveRejectsUnknownBusinessType() {
	_, err := s.service.Save(s.ctx, s.ownerID, &SaveShopRequest{Name: "X", BusinessType: "pharmacy"})
	s.Error(err)
}

func (s *ShopServiceTestSuite) TestSaveNewShopSlugsAndNormalizes() {
	s.shopRepo.On("GetByOwner", s.ctx, s.ownerID).Return(nil, nil)
	s.shopRepo.On("Upsert", s.ctx, mock.Anything).Return(nil)
	s.storefronts.On("InvalidateShop", s.ctx, mock.Anything).Return()

	shop, err := s.service.Save(s.ctx, s.ownerID, &SaveShopRequest{
		Name:     "Sharma Dhaba",
		Domains:  []string{"WWW.Sharma.Example", "sharma.example", "", "other.example"},
		Services: []string{" Tiffin ", ""},
		IsActive: true,
	})

	s.Require().NoError(err)
	s.Equal(s.ownerID, shop.OwnerID)
	s.Equal("sharma-dhaba", shop.Slug)
	s.Equal([]string{"sharma.example", "other.example"}, shop.Domains)
	s.Equal([]string{"Tiffin"}, shop.Services)
	s.Equal("juice", shop.BusinessType)
	s.Nil(shop.Tagline)
}

func (s *ShopServiceTestSuite) TestSaveExistingShopKeepsID() {
	existing := &models.Shop{ID: uuid.New(), OwnerID: s.ownerID, Name: "Old", Domains: []string{"old.example"}}
	s.shopRepo.On("GetByOwner", s.ctx, s.ownerID).Return(existing, nil)
	s.shopRepo.On("Upsert", s.ctx, mock.Anything).Return(nil)
	s.storefronts.On("InvalidateShop", s.ctx, mock.Anything).Return()

	shop, err := s.service.Save(s.ctx, s.ownerID, &SaveShopRequest{
		Name:    "New Name",
		Domains: []string{"new.example"},
	})

	s.Require().NoError(err)
	s.Equal(existing.ID, shop.ID)
	// Both the new and the old domain snapshots get invalidated.
	s.storefronts.AssertNumberOfCalls(s.T(), "InvalidateShop", 2)
}

func TestShopServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShopServiceTestSuite))
}
