package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SuperAdminRepository interface {
	IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type superAdminRepo struct {
	db DB
}

func NewSuperAdminRepo(db DB) SuperAdminRepository {
	return &superAdminRepo{db: db}
}

func (r *superAdminRepo) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var found uuid.UUID
	query := `SELECT user_id FROM super_admins WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
