package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dukaan/internal/metrics"
	"dukaan/internal/middleware"
	"dukaan/internal/services"
	"dukaan/internal/storefront"
	"dukaan/internal/verification"
	"dukaan/internal/whatsapp"
)

// PublicHandlers serves the buyer-facing endpoints: storefront, catalog, the
// OTP gate, customer autofill and order submission. The tenant middleware
// resolves the host before any of these run.
type PublicHandlers struct {
	storefronts services.StorefrontService
	orders      services.OrderService
	gate        *verification.Gate
}

func NewPublicHandlers(storefronts services.StorefrontService, orders services.OrderService, gate *verification.Gate) *PublicHandlers {
	return &PublicHandlers{storefronts: storefronts, orders: orders, gate: gate}
}

func requestView(c echo.Context) (storefront.View, error) {
	view, ok := middleware.GetStorefrontView(c)
	if !ok {
		return storefront.View{}, echo.NewHTTPError(http.StatusInternalServerError, "Storefront not resolved")
	}
	return view, nil
}

// GetStorefront returns the resolved storefront identity for the request
// host, with a greeting link and QR for the landing page.
func (h *PublicHandlers) GetStorefront(c echo.Context) error {
	view, err := requestView(c)
	if err != nil {
		return err
	}

	const greeting = "Hello! I would like to place an order."
	return c.JSON(http.StatusOK, map[string]interface{}{
		"storefront":    view,
		"whatsapp_link": whatsapp.BuildLink(view.WhatsAppNumber, greeting),
		"whatsapp_qr":   whatsapp.BuildQR(view.WhatsAppNumber, greeting),
	})
}

// GetCatalog returns the shop's catalog grouped into category sections.
func (h *PublicHandlers) GetCatalog(c echo.Context) error {
	view, err := requestView(c)
	if err != nil {
		return err
	}
	if view.ShopID == uuid.Nil {
		// Unclaimed host: an empty catalog, not an error.
		return c.JSON(http.StatusOK, map[string]interface{}{
			"sections":      []storefront.Section{},
			"uncategorized": []interface{}{},
		})
	}

	catalog, err := h.storefronts.GetCatalog(c.Request().Context(), view.ShopID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load catalog")
	}

	sections, uncategorized := storefront.GroupCatalog(catalog)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sections":      sections,
		"uncategorized": uncategorized,
	})
}

// SendOTP asks the auth provider to deliver a verification code.
func (h *PublicHandlers) SendOTP(c echo.Context) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.gate.SendCode(c.Request().Context(), req.Phone); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	metrics.OTPSentTotal.Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "OTP sent."})
}

// VerifyOTP submits the code and moves the phone to verified on success.
func (h *PublicHandlers) VerifyOTP(c echo.Context) error {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Code is required")
	}

	session, err := h.gate.Confirm(c.Request().Context(), req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, verification.ErrNoCodeSent) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "Phone verified.",
		"session": session,
	})
}

// LookupCustomer powers the autofill on the order form: a known phone
// returns the saved name and address.
func (h *PublicHandlers) LookupCustomer(c echo.Context) error {
	phone := c.QueryParam("phone")
	customer, err := h.orders.LookupCustomer(c.Request().Context(), phone)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if customer == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"found": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"found":   true,
		"name":    customer.Name,
		"address": customer.Address,
	})
}

// PlaceOrder runs the submission pipeline and returns the WhatsApp handoff.
func (h *PublicHandlers) PlaceOrder(c echo.Context) error {
	view, err := requestView(c)
	if err != nil {
		return err
	}

	var req services.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.orders.PlaceOrder(c.Request().Context(), view, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, verification.ErrNotVerified):
			return echo.NewHTTPError(http.StatusForbidden, "Verify your phone before placing the order.")
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	metrics.OrdersPlacedTotal.WithLabelValues(strconv.FormatBool(result.Saved)).Inc()
	return c.JSON(http.StatusOK, result)
}
