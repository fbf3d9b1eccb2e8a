package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"dukaan/internal/models"
	"dukaan/internal/services"
)

type mockProvisioningService struct {
	mock.Mock
}

func (m *mockProvisioningService) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockProvisioningService) CreateShop(ctx context.Context, req *services.CreateShopRequest) (*models.Shop, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shop), args.Error(1)
}

func (m *mockProvisioningService) ListShops(ctx context.Context) ([]*models.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shop), args.Error(1)
}

func (m *mockProvisioningService) ToggleShop(ctx context.Context, shopID uuid.UUID, isActive bool) error {
	return m.Called(ctx, shopID, isActive).Error(0)
}

func (m *mockProvisioningService) UpdateShop(ctx context.Context, req *services.UpdateShopRequest) error {
	return m.Called(ctx, req).Error(0)
}

type SuperAdminHandlersTestSuite struct {
	suite.Suite
	provisioning *mockProvisioningService
	handlers     *SuperAdminHandlers
	echo         *echo.Echo
}

func (s *SuperAdminHandlersTestSuite) SetupTest() {
	s.provisioning = new(mockProvisioningService)
	s.handlers = NewSuperAdminHandlers(s.provisioning)
	s.echo = echo.New()
}

func TestSuperAdminHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(SuperAdminHandlersTestSuite))
}

func (s *SuperAdminHandlersTestSuite) postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *SuperAdminHandlersTestSuite) TestCreateShopSucceeds() {
	s.provisioning.On("CreateShop", mock.Anything, mock.Anything).
		Return(&models.Shop{ID: uuid.New()}, nil)

	c, rec := s.postJSON("/api/super-admin/create-shop",
		`{"email":"owner@example.com","password":"secret123","shopName":"Sharma Dhaba"}`)

	s.Require().NoError(s.handlers.CreateShop(c))
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]bool
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.True(body["success"])
}

func (s *SuperAdminHandlersTestSuite) TestCreateShopInvalidPayloadIsClientError() {
	s.provisioning.On("CreateShop", mock.Anything, mock.Anything).
		Return(nil, services.ErrInvalidShopPayload)

	c, _ := s.postJSON("/api/super-admin/create-shop", `{"email":"owner@example.com"}`)

	err := s.handlers.CreateShop(c)
	s.Require().Error(err)
	httpErr, ok := err.(*echo.HTTPError)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, httpErr.Code)
}

func (s *SuperAdminHandlersTestSuite) TestCreateShopProviderFailureIsServerError() {
	s.provisioning.On("CreateShop", mock.Anything, mock.Anything).
		Return(nil, errors.New("email already registered"))

	c, _ := s.postJSON("/api/super-admin/create-shop",
		`{"email":"owner@example.com","password":"secret123","shopName":"X"}`)

	err := s.handlers.CreateShop(c)
	s.Require().Error(err)
	httpErr, ok := err.(*echo.HTTPError)
	s.Require().True(ok)
	s.Equal(http.StatusInternalServerError, httpErr.Code)
	s.Equal("email already registered", httpErr.Message)
}

func (s *SuperAdminHandlersTestSuite) TestListShopsWrapsPayload() {
	shops := []*models.Shop{{ID: uuid.New(), Name: "Alpha Juice"}}
	s.provisioning.On("ListShops", mock.Anything).Return(shops, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/super-admin/shops", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handlers.ListShops(c))
	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Shops []*models.Shop `json:"shops"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Shops, 1)
	s.Equal("Alpha Juice", body.Shops[0].Name)
}

func (s *SuperAdminHandlersTestSuite) TestListShopsEmptyRegistryIsAnArray() {
	s.provisioning.On("ListShops", mock.Anything).Return([]*models.Shop(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/super-admin/shops", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handlers.ListShops(c))
	s.Contains(rec.Body.String(), `"shops":[]`)
}

func (s *SuperAdminHandlersTestSuite) TestToggleShopRequiresIsActive() {
	c, _ := s.postJSON("/api/super-admin/toggle-shop",
		`{"shopId":"`+uuid.NewString()+`"}`)

	err := s.handlers.ToggleShop(c)
	s.Require().Error(err)
	httpErr, ok := err.(*echo.HTTPError)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, httpErr.Code)
	s.provisioning.AssertNotCalled(s.T(), "ToggleShop", mock.Anything, mock.Anything, mock.Anything)
}
