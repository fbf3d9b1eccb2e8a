package repositories

import (
	"context"

	"dukaan/internal/models"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, shopID uuid.UUID) ([]*models.Category, error)
	Delete(ctx context.Context, shopID, id uuid.UUID) error
}

type categoryRepo struct {
	db DB
}

func NewCategoryRepo(db DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, shop_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.ShopID, category.Name)
	return err
}

func (r *categoryRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{}
	query := `
		SELECT id, shop_id, name, created_at, updated_at
		FROM categories
		WHERE shop_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, shopID, id).Scan(&category.ID, &category.ShopID, &category.Name,
		&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) List(ctx context.Context, shopID uuid.UUID) ([]*models.Category, error) {
	query := `
		SELECT id, shop_id, name, created_at, updated_at
		FROM categories
		WHERE shop_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.ShopID, &category.Name,
			&category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Delete removes the category and clears the reference on its products, in
// one transaction. The products themselves stay retrievable as uncategorized
// tenant products.
func (r *categoryRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	orphan := `UPDATE products SET category_id = NULL, updated_at = NOW() WHERE shop_id = $1 AND category_id = $2`
	if _, err := tx.Exec(ctx, orphan, shopID, id); err != nil {
		return err
	}

	remove := `DELETE FROM categories WHERE shop_id = $1 AND id = $2`
	if _, err := tx.Exec(ctx, remove, shopID, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
