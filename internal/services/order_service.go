package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dukaan/internal/cart"
	"dukaan/internal/common"
	"dukaan/internal/message"
	"dukaan/internal/models"
	"dukaan/internal/repositories"
	"dukaan/internal/storefront"
	"dukaan/internal/verification"
	"dukaan/internal/whatsapp"
)

// ErrEmptyCart rejects submission with nothing selected.
var ErrEmptyCart = errors.New("select at least one item before placing the order")

// PersistenceWarning is shown when the order could not be saved but the
// WhatsApp handoff still goes through.
const PersistenceWarning = "Could not save order to database. WhatsApp will still open."

// OrderService runs the submission pipeline: preconditions, best-effort
// persistence, then the WhatsApp handoff. Persistence failure degrades the
// result instead of blocking it.
type OrderService interface {
	PlaceOrder(ctx context.Context, view storefront.View, req *PlaceOrderRequest) (*PlaceOrderResult, error)
	// LookupCustomer returns the saved customer for a phone, or nil.
	LookupCustomer(ctx context.Context, phone string) (*models.Customer, error)
	ListOrders(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.OrderWithCustomer, error)
	// ListOrderItems returns the item snapshots of one of the shop's orders.
	ListOrderItems(ctx context.Context, shopID, orderID uuid.UUID) ([]*models.OrderItem, error)
	UpdateStatus(ctx context.Context, shopID, orderID uuid.UUID, status string) error
	Stats(ctx context.Context, shopID uuid.UUID) (count int, revenue float64, err error)
}

type PlaceOrderRequest struct {
	Selection map[uuid.UUID]int `json:"selection" validate:"required"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone" validate:"required"`
	Address   string            `json:"address"`
}

type PlaceOrderResult struct {
	OrderID      string          `json:"order_id,omitempty"`
	Saved        bool            `json:"saved"`
	Warning      string          `json:"warning,omitempty"`
	Total        float64         `json:"total"`
	Items        []cart.LineItem `json:"items"`
	Message      string          `json:"message"`
	WhatsAppLink string          `json:"whatsapp_link"`
	QRURL        string          `json:"qr_url"`
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	storefronts  StorefrontService
	gate         *verification.Gate
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	customerRepo repositories.CustomerRepository,
	storefronts StorefrontService,
	gate *verification.Gate,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		storefronts:  storefronts,
		gate:         gate,
		logger:       logger,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, view storefront.View, req *PlaceOrderRequest) (*PlaceOrderResult, error) {
	if err := common.ValidatePhone(req.Phone); err != nil {
		return nil, err
	}

	// Price the selection against the live catalog. Unknown ids drop out, so
	// an empty cart after pricing is still an empty cart.
	var items []cart.LineItem
	if view.ShopID != uuid.Nil {
		catalog, err := s.storefronts.GetCatalog(ctx, view.ShopID)
		if err != nil {
			return nil, err
		}
		items = cart.Selection(req.Selection).LineItems(catalog.Products)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.gate.RequireVerified(ctx, req.Phone); err != nil {
		return nil, err
	}

	total := cart.Total(items)
	result := &PlaceOrderResult{Total: total, Items: items}

	// Persistence is best-effort: any failure here downgrades to a warning
	// and the handoff still happens, with {order_id} left empty.
	orderID, err := s.persist(ctx, view.ShopID, req, items, total)
	if err != nil {
		s.logger.Warn("order persistence failed",
			zap.String("shop_id", view.ShopID.String()),
			zap.Float64("total", total),
			zap.Error(err))
		result.Warning = PersistenceWarning
	} else {
		result.Saved = true
		result.OrderID = orderID.String()
	}

	text := message.Render(view.MessageTemplate, message.Order{
		ShopName:     view.Name,
		Items:        items,
		Total:        total,
		DeliveryNote: view.DeliveryNote,
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		OrderID:      result.OrderID,
	})
	result.Message = text
	result.WhatsAppLink = whatsapp.BuildLink(view.WhatsAppNumber, text)
	result.QRURL = whatsapp.BuildQR(view.WhatsAppNumber, text)

	return result, nil
}

func (s *orderService) persist(ctx context.Context, shopID uuid.UUID, req *PlaceOrderRequest, items []cart.LineItem, total float64) (uuid.UUID, error) {
	customer := &models.Customer{
		ID:      uuid.New(),
		Phone:   req.Phone,
		Name:    req.Name,
		Address: req.Address,
	}
	if err := s.customerRepo.UpsertByPhone(ctx, customer); err != nil {
		return uuid.Nil, err
	}

	order := &models.Order{
		ID:            uuid.New(),
		ShopID:        shopID,
		CustomerID:    customer.ID,
		Total:         total,
		PaymentMethod: models.PaymentMethodCOD,
		Paid:          false,
		Status:        models.OrderStatusNew,
	}
	orderItems := make([]*models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, &models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}
	if err := s.orderRepo.CreateWithItems(ctx, order, orderItems); err != nil {
		return uuid.Nil, err
	}
	return order.ID, nil
}

func (s *orderService) LookupCustomer(ctx context.Context, phone string) (*models.Customer, error) {
	if err := common.ValidatePhone(phone); err != nil {
		return nil, err
	}
	return s.customerRepo.GetByPhone(ctx, phone)
}

func (s *orderService) ListOrders(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.OrderWithCustomer, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.orderRepo.ListByShop(ctx, shopID, limit, offset)
}

func (s *orderService) ListOrderItems(ctx context.Context, shopID, orderID uuid.UUID) ([]*models.OrderItem, error) {
	if _, err := s.orderRepo.GetByID(ctx, shopID, orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("order not found")
		}
		return nil, err
	}
	return s.orderRepo.ListItems(ctx, orderID)
}

func (s *orderService) UpdateStatus(ctx context.Context, shopID, orderID uuid.UUID, status string) error {
	if !models.ValidOrderStatus(status) {
		return errors.New("status must be one of: new, preparing, completed")
	}
	return s.orderRepo.UpdateStatus(ctx, shopID, orderID, status)
}

func (s *orderService) Stats(ctx context.Context, shopID uuid.UUID) (int, float64, error) {
	return s.orderRepo.CountAndRevenue(ctx, shopID)
}
