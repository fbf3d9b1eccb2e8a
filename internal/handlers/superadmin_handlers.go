package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dukaan/internal/common"
	"dukaan/internal/models"
	"dukaan/internal/services"
)

func parseShopID(raw string) (uuid.UUID, error) {
	id, err := common.ValidateUUID(raw, "shopId")
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

// SuperAdminHandlers serves the tenant registry. The super-admin middleware
// has already checked the allow-list before any of these run.
type SuperAdminHandlers struct {
	provisioning services.ProvisioningService
}

func NewSuperAdminHandlers(provisioning services.ProvisioningService) *SuperAdminHandlers {
	return &SuperAdminHandlers{provisioning: provisioning}
}

// CreateShop provisions an owner account on the auth provider and its shop
// row in one call. A bad payload is the caller's fault; anything the provider
// or the store refuses is a server failure.
func (h *SuperAdminHandlers) CreateShop(c echo.Context) error {
	var req services.CreateShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}

	if _, err := h.provisioning.CreateShop(c.Request().Context(), &req); err != nil {
		if errors.Is(err, services.ErrInvalidShopPayload) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *SuperAdminHandlers) ListShops(c echo.Context) error {
	shops, err := h.provisioning.ListShops(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load shops")
	}
	if shops == nil {
		shops = []*models.Shop{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"shops": shops})
}

func (h *SuperAdminHandlers) ToggleShop(c echo.Context) error {
	var req struct {
		ShopID   string `json:"shopId"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if req.IsActive == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isActive is required")
	}
	shopID, err := parseShopID(req.ShopID)
	if err != nil {
		return err
	}

	if err := h.provisioning.ToggleShop(c.Request().Context(), shopID, *req.IsActive); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *SuperAdminHandlers) UpdateShop(c echo.Context) error {
	var body struct {
		ShopID  string   `json:"shopId"`
		Name    string   `json:"name"`
		Slug    string   `json:"slug"`
		Domains []string `json:"domains"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	shopID, err := parseShopID(body.ShopID)
	if err != nil {
		return err
	}

	req := &services.UpdateShopRequest{
		ShopID:  shopID,
		Name:    body.Name,
		Slug:    body.Slug,
		Domains: body.Domains,
	}
	if err := h.provisioning.UpdateShop(c.Request().Context(), req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
