package repositories

import (
	"context"
	"errors"

	"dukaan/internal/models"

	"github.com/jackc/pgx/v5"
)

type CustomerRepository interface {
	UpsertByPhone(ctx context.Context, customer *models.Customer) error
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
}

type customerRepo struct {
	db DB
}

func NewCustomerRepo(db DB) CustomerRepository {
	return &customerRepo{db: db}
}

// UpsertByPhone inserts or overwrites the customer record keyed on phone.
// Name and address are last-write-wins; the persisted id is written back.
func (r *customerRepo) UpsertByPhone(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, phone, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name, address = EXCLUDED.address, updated_at = NOW()
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, customer.ID, customer.Phone, customer.Name, customer.Address).
		Scan(&customer.ID)
}

// GetByPhone returns nil, nil when no customer has the number; the autofill
// lookup treats absence as an empty form, not an error.
func (r *customerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, phone, name, address, created_at, updated_at
		FROM customers
		WHERE phone = $1
	`
	err := r.db.QueryRow(ctx, query, phone).Scan(&customer.ID, &customer.Phone, &customer.Name,
		&customer.Address, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}
