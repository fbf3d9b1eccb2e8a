package repositories

import (
	"context"

	"dukaan/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, shopID, id uuid.UUID) error
	List(ctx context.Context, shopID uuid.UUID) ([]*models.Product, error)
	ListActive(ctx context.Context, shopID uuid.UUID) ([]*models.Product, error)
	SetImageURL(ctx context.Context, shopID, id uuid.UUID, imageURL string) error
}

type productRepo struct {
	db DB
}

func NewProductRepo(db DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, shop_id, category_id, name, description, price, image_url, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.ShopID, &product.CategoryID, &product.Name,
		&product.Description, &product.Price, &product.ImageURL, &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, shop_id, category_id, name, description, price, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.ShopID, product.CategoryID, product.Name,
		product.Description, product.Price, product.ImageURL, product.IsActive)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE shop_id = $1 AND id = $2`
	return scanProduct(r.db.QueryRow(ctx, query, shopID, id))
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4, image_url = $5, is_active = $6, updated_at = NOW()
		WHERE shop_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, product.CategoryID, product.Name, product.Description,
		product.Price, product.ImageURL, product.IsActive, product.ShopID, product.ID)
	return err
}

func (r *productRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	query := `DELETE FROM products WHERE shop_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, shopID, id)
	return err
}

func (r *productRepo) list(ctx context.Context, query string, shopID uuid.UUID) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// List returns all of the shop's products, inactive ones included. The admin
// editor is the only caller.
func (r *productRepo) List(ctx context.Context, shopID uuid.UUID) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE shop_id = $1 ORDER BY name`
	return r.list(ctx, query, shopID)
}

// ListActive returns the products the public menu shows, ordered by name.
func (r *productRepo) ListActive(ctx context.Context, shopID uuid.UUID) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE shop_id = $1 AND is_active = true ORDER BY name`
	return r.list(ctx, query, shopID)
}

func (r *productRepo) SetImageURL(ctx context.Context, shopID, id uuid.UUID, imageURL string) error {
	query := `UPDATE products SET image_url = $1, updated_at = NOW() WHERE shop_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, imageURL, shopID, id)
	return err
}
