package repositories

import (
	"context"

	"dukaan/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
	GetActiveByDomain(ctx context.Context, domain string) (*models.Shop, error)
	Upsert(ctx context.Context, shop *models.Shop) error
	List(ctx context.Context) ([]*models.Shop, error)
	SetActive(ctx context.Context, id uuid.UUID, isActive bool) error
	UpdateRegistry(ctx context.Context, id uuid.UUID, name, slug string, domains []string) error
}

type shopRepo struct {
	db DB
}

func NewShopRepo(db DB) ShopRepository {
	return &shopRepo{db: db}
}

const shopColumns = `id, owner_id, name, slug, domains, tagline, delivery_note, business_note, branding, services, whatsapp_number, message_template, address, banner_text, business_hours, is_active, business_type, created_at, updated_at`

func scanShop(row pgx.Row) (*models.Shop, error) {
	shop := &models.Shop{}
	err := row.Scan(&shop.ID, &shop.OwnerID, &shop.Name, &shop.Slug, &shop.Domains, &shop.Tagline,
		&shop.DeliveryNote, &shop.BusinessNote, &shop.Branding, &shop.Services, &shop.WhatsAppNumber,
		&shop.MessageTemplate, &shop.Address, &shop.BannerText, &shop.BusinessHours, &shop.IsActive,
		&shop.BusinessType, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return shop, nil
}

func (r *shopRepo) Create(ctx context.Context, shop *models.Shop) error {
	query := `
		INSERT INTO shops (id, owner_id, name, slug, domains, tagline, delivery_note, business_note, branding, services, whatsapp_number, message_template, address, banner_text, business_hours, is_active, business_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, shop.ID, shop.OwnerID, shop.Name, shop.Slug, shop.Domains,
		shop.Tagline, shop.DeliveryNote, shop.BusinessNote, shop.Branding, shop.Services,
		shop.WhatsAppNumber, shop.MessageTemplate, shop.Address, shop.BannerText, shop.BusinessHours,
		shop.IsActive, shop.BusinessType)
	return err
}

func (r *shopRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`
	return scanShop(r.db.QueryRow(ctx, query, id))
}

func (r *shopRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE owner_id = $1`
	return scanShop(r.db.QueryRow(ctx, query, ownerID))
}

// GetActiveByDomain finds the active shop claiming the given (already
// normalized) domain. Uniqueness of a domain among active shops is the
// storage layer's constraint, not re-checked here.
func (r *shopRepo) GetActiveByDomain(ctx context.Context, domain string) (*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE is_active = true AND $1 = ANY(domains)`
	return scanShop(r.db.QueryRow(ctx, query, domain))
}

// Upsert inserts the owner's shop or updates it in place, keyed on owner_id.
// The persisted row's id and timestamps are written back into shop.
func (r *shopRepo) Upsert(ctx context.Context, shop *models.Shop) error {
	query := `
		INSERT INTO shops (id, owner_id, name, slug, domains, tagline, delivery_note, business_note, branding, services, whatsapp_number, message_template, address, banner_text, business_hours, is_active, business_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			name = EXCLUDED.name, slug = EXCLUDED.slug, domains = EXCLUDED.domains,
			tagline = EXCLUDED.tagline, delivery_note = EXCLUDED.delivery_note,
			business_note = EXCLUDED.business_note, branding = EXCLUDED.branding,
			services = EXCLUDED.services, whatsapp_number = EXCLUDED.whatsapp_number,
			message_template = EXCLUDED.message_template, address = EXCLUDED.address,
			banner_text = EXCLUDED.banner_text, business_hours = EXCLUDED.business_hours,
			is_active = EXCLUDED.is_active, business_type = EXCLUDED.business_type,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, shop.ID, shop.OwnerID, shop.Name, shop.Slug, shop.Domains,
		shop.Tagline, shop.DeliveryNote, shop.BusinessNote, shop.Branding, shop.Services,
		shop.WhatsAppNumber, shop.MessageTemplate, shop.Address, shop.BannerText, shop.BusinessHours,
		shop.IsActive, shop.BusinessType).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
}

func (r *shopRepo) List(ctx context.Context) ([]*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*models.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

func (r *shopRepo) SetActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `UPDATE shops SET is_active = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, isActive, id)
	return err
}

func (r *shopRepo) UpdateRegistry(ctx context.Context, id uuid.UUID, name, slug string, domains []string) error {
	query := `UPDATE shops SET name = $1, slug = $2, domains = $3, updated_at = NOW() WHERE id = $4`
	_, err := r.db.Exec(ctx, query, name, slug, domains, id)
	return err
}
