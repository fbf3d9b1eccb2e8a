package repositories

import (
	"context"

	"dukaan/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order, items []*models.OrderItem) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Order, error)
	ListByShop(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.OrderWithCustomer, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
	UpdateStatus(ctx context.Context, shopID, id uuid.UUID, status string) error
	CountAndRevenue(ctx context.Context, shopID uuid.UUID) (int, float64, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

// CreateWithItems inserts the order and its item snapshots in one
// transaction; either all rows land or none do.
func (r *orderRepo) CreateWithItems(ctx context.Context, order *models.Order, items []*models.OrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, shop_id, customer_id, total, payment_method, paid, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.ShopID, order.CustomerID, order.Total,
		order.PaymentMethod, order.Paid, order.Status); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, price, qty)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery, item.OrderID, item.ProductID, item.Name, item.Price, item.Qty); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, shop_id, customer_id, total, payment_method, paid, status, created_at, updated_at
		FROM orders
		WHERE shop_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, shopID, id).Scan(&order.ID, &order.ShopID, &order.CustomerID,
		&order.Total, &order.PaymentMethod, &order.Paid, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) ListByShop(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.OrderWithCustomer, error) {
	query := `
		SELECT o.id, o.shop_id, o.customer_id, o.total, o.payment_method, o.paid, o.status, o.created_at, o.updated_at,
		       c.name, c.phone, c.address
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.shop_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.OrderWithCustomer
	for rows.Next() {
		order := &models.OrderWithCustomer{}
		if err := rows.Scan(&order.ID, &order.ShopID, &order.CustomerID, &order.Total,
			&order.PaymentMethod, &order.Paid, &order.Status, &order.CreatedAt, &order.UpdatedAt,
			&order.CustomerName, &order.CustomerPhone, &order.CustomerAddress); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT order_id, product_id, name, price, qty
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Qty); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, shopID, id uuid.UUID, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE shop_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, status, shopID, id)
	return err
}

// CountAndRevenue backs the admin dashboard tiles.
func (r *orderRepo) CountAndRevenue(ctx context.Context, shopID uuid.UUID) (int, float64, error) {
	var count int
	var revenue float64
	query := `SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders WHERE shop_id = $1`
	err := r.db.QueryRow(ctx, query, shopID).Scan(&count, &revenue)
	return count, revenue, err
}
