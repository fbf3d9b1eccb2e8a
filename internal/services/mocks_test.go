package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dukaan/internal/auth"
	"dukaan/internal/models"
	"dukaan/internal/storefront"
)

type mockShopRepo struct {
	mock.Mock
}

func (m *mockShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *mockShopRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shop), args.Error(1)
}

func (m *mockShopRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shop), args.Error(1)
}

func (m *mockShopRepo) GetActiveByDomain(ctx context.Context, domain string) (*models.Shop, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shop), args.Error(1)
}

func (m *mockShopRepo) Upsert(ctx context.Context, shop *models.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *mockShopRepo) List(ctx context.Context) ([]*models.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shop), args.Error(1)
}

func (m *mockShopRepo) SetActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	return m.Called(ctx, id, isActive).Error(0)
}

func (m *mockShopRepo) UpdateRegistry(ctx context.Context, id uuid.UUID, name, slug string, domains []string) error {
	return m.Called(ctx, id, name, slug, domains).Error(0)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, shopID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context, shopID uuid.UUID) ([]*models.Category, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	return m.Called(ctx, shopID, id).Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, shopID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	return m.Called(ctx, shopID, id).Error(0)
}

func (m *mockProductRepo) List(ctx context.Context, shopID uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *mockProductRepo) ListActive(ctx context.Context, shopID uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *mockProductRepo) SetImageURL(ctx context.Context, shopID, id uuid.UUID, imageURL string) error {
	return m.Called(ctx, shopID, id, imageURL).Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) UpsertByPhone(ctx context.Context, customer *models.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *models.Order, items []*models.OrderItem) error {
	return m.Called(ctx, order, items).Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, shopID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByShop(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.OrderWithCustomer, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderWithCustomer), args.Error(1)
}

func (m *mockOrderRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, shopID, id uuid.UUID, status string) error {
	return m.Called(ctx, shopID, id, status).Error(0)
}

func (m *mockOrderRepo) CountAndRevenue(ctx context.Context, shopID uuid.UUID) (int, float64, error) {
	args := m.Called(ctx, shopID)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

type mockSuperAdminRepo struct {
	mock.Mock
}

func (m *mockSuperAdminRepo) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type mockStorefrontService struct {
	mock.Mock
}

func (m *mockStorefrontService) ResolveShop(ctx context.Context, host string) (*models.Shop, error) {
	args := m.Called(ctx, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shop), args.Error(1)
}

func (m *mockStorefrontService) GetStorefront(ctx context.Context, host string) (storefront.View, error) {
	args := m.Called(ctx, host)
	return args.Get(0).(storefront.View), args.Error(1)
}

func (m *mockStorefrontService) GetCatalog(ctx context.Context, shopID uuid.UUID) (*models.CatalogData, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CatalogData), args.Error(1)
}

func (m *mockStorefrontService) InvalidateShop(ctx context.Context, shop *models.Shop) {
	m.Called(ctx, shop)
}

type mockAuthProvider struct {
	mock.Mock
}

func (m *mockAuthProvider) SendOTP(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

func (m *mockAuthProvider) VerifyOTP(ctx context.Context, phone, code string) (*auth.Session, error) {
	args := m.Called(ctx, phone, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *mockAuthProvider) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *mockAuthProvider) CreateUser(ctx context.Context, email, password string) (uuid.UUID, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// memStore is an in-memory verification store for gate-backed tests.
type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) SetString(_ context.Context, key, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memStore) GetString(_ context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}
