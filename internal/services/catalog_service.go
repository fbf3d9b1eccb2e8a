package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dukaan/internal/common"
	"dukaan/internal/models"
	"dukaan/internal/repositories"
)

// CatalogService is the admin's category and product editor. Every write
// persists first, then invalidates the shop's cached catalog, so stale state
// is never presented as saved.
type CatalogService interface {
	CreateCategory(ctx context.Context, shopID uuid.UUID, name string) (*models.Category, error)
	ListCategories(ctx context.Context, shopID uuid.UUID) ([]*models.Category, error)
	// DeleteCategory removes the category and clears the reference on its
	// products; the products themselves survive.
	DeleteCategory(ctx context.Context, shopID, categoryID uuid.UUID) error

	CreateProduct(ctx context.Context, shopID uuid.UUID, req *ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, shopID, productID uuid.UUID, req *ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, shopID, productID uuid.UUID) error
	ListProducts(ctx context.Context, shopID uuid.UUID) ([]*models.Product, error)
	UploadProductImage(ctx context.Context, shopID, productID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
}

type ProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	IsActive    bool       `json:"is_active"`
}

type catalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	shopRepo     repositories.ShopRepository
	storefronts  StorefrontService
	storage      MinioService
	bucket       string
}

func NewCatalogService(
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	shopRepo repositories.ShopRepository,
	storefronts StorefrontService,
	storage MinioService,
	bucket string,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		shopRepo:     shopRepo,
		storefronts:  storefronts,
		storage:      storage,
		bucket:       bucket,
	}
}

func (s *catalogService) invalidate(ctx context.Context, shopID uuid.UUID) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil || shop == nil {
		shop = &models.Shop{ID: shopID}
	}
	s.storefronts.InvalidateShop(ctx, shop)
}

func (s *catalogService) CreateCategory(ctx context.Context, shopID uuid.UUID, name string) (*models.Category, error) {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}
	category := &models.Category{
		ID:     uuid.New(),
		ShopID: shopID,
		Name:   strings.TrimSpace(name),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx, shopID)
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context, shopID uuid.UUID) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, shopID)
}

func (s *catalogService) DeleteCategory(ctx context.Context, shopID, categoryID uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, shopID, categoryID); err != nil {
		return err
	}
	s.invalidate(ctx, shopID)
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, shopID uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := s.validateProduct(req); err != nil {
		return nil, err
	}
	product := &models.Product{
		ID:          uuid.New(),
		ShopID:      shopID,
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: optional(req.Description),
		Price:       req.Price,
		IsActive:    req.IsActive,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, shopID)
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, shopID, productID uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := s.validateProduct(req); err != nil {
		return nil, err
	}
	existing, err := s.productRepo.GetByID(ctx, shopID, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New("product not found")
	}
	if err != nil {
		return nil, err
	}

	existing.CategoryID = req.CategoryID
	existing.Name = strings.TrimSpace(req.Name)
	existing.Description = optional(req.Description)
	existing.Price = req.Price
	existing.IsActive = req.IsActive

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, shopID)
	return existing, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, shopID, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, shopID, productID); err != nil {
		return err
	}
	s.invalidate(ctx, shopID)
	return nil
}

func (s *catalogService) ListProducts(ctx context.Context, shopID uuid.UUID) ([]*models.Product, error) {
	return s.productRepo.List(ctx, shopID)
}

func (s *catalogService) UploadProductImage(ctx context.Context, shopID, productID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	if s.storage == nil {
		return "", errors.New("image storage is not configured")
	}
	if _, err := s.productRepo.GetByID(ctx, shopID, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errors.New("product not found")
		}
		return "", err
	}

	objectName := fmt.Sprintf("%s/%s/%s", shopID, productID, filename)
	if err := s.storage.UploadImage(ctx, s.bucket, objectName, contentType, reader, size); err != nil {
		return "", err
	}
	imageURL, err := s.storage.GetPresignedURL(s.bucket, objectName, 7*24*time.Hour)
	if err != nil {
		return "", err
	}
	if err := s.productRepo.SetImageURL(ctx, shopID, productID, imageURL); err != nil {
		return "", err
	}
	s.invalidate(ctx, shopID)
	return imageURL, nil
}

func (s *catalogService) validateProduct(req *ProductRequest) error {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return err
	}
	return common.ValidatePrice(req.Price)
}
