package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dukaan/internal/common"
	"dukaan/internal/models"
	"dukaan/internal/services"
)

// AdminHandlers serves the shop owner's dashboard: the shop profile editor,
// catalog management and the order list. Every route is scoped to the
// authenticated owner's shop.
type AdminHandlers struct {
	shops   services.ShopService
	catalog services.CatalogService
	orders  services.OrderService
}

func NewAdminHandlers(shops services.ShopService, catalog services.CatalogService, orders services.OrderService) *AdminHandlers {
	return &AdminHandlers{shops: shops, catalog: catalog, orders: orders}
}

// ownerShop resolves the caller's shop. Routes that require an existing shop
// use this; the profile editor itself tolerates a missing one.
func (h *AdminHandlers) ownerShop(c echo.Context) (*models.Shop, error) {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	shop, err := h.shops.GetByOwner(c.Request().Context(), userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load shop")
	}
	if shop == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "No shop is linked to this account")
	}
	return shop, nil
}

// GetShop returns the owner's shop profile, or 404 before first save.
func (h *AdminHandlers) GetShop(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}

// SaveShop validates and persists the whole profile in one write.
func (h *AdminHandlers) SaveShop(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req services.SaveShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	shop, err := h.shops.Save(c.Request().Context(), userID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, shop)
}

// GetStats returns the order count and revenue shown at the top of the
// dashboard.
func (h *AdminHandlers) GetStats(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	count, revenue, err := h.orders.Stats(c.Request().Context(), shop.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load stats")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"order_count": count,
		"revenue":     revenue,
	})
}

func (h *AdminHandlers) ListCategories(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	categories, err := h.catalog.ListCategories(c.Request().Context(), shop.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load categories")
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *AdminHandlers) CreateCategory(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	category, err := h.catalog.CreateCategory(c.Request().Context(), shop.ID, req.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes the category; its products survive uncategorized.
func (h *AdminHandlers) DeleteCategory(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	categoryID, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.catalog.DeleteCategory(c.Request().Context(), shop.ID, categoryID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete category")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandlers) ListProducts(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	products, err := h.catalog.ListProducts(c.Request().Context(), shop.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load products")
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminHandlers) CreateProduct(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	var req services.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	product, err := h.catalog.CreateProduct(c.Request().Context(), shop.ID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHandlers) UpdateProduct(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var req services.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	product, err := h.catalog.UpdateProduct(c.Request().Context(), shop.ID, productID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

func (h *AdminHandlers) DeleteProduct(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.catalog.DeleteProduct(c.Request().Context(), shop.ID, productID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadProductImage stores the uploaded file in object storage and points
// the product's image URL at it.
func (h *AdminHandlers) UploadProductImage(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image")
	}
	defer file.Close()

	imageURL, err := h.catalog.UploadProductImage(
		c.Request().Context(), shop.ID, productID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}
	return c.JSON(http.StatusOK, map[string]string{"image_url": imageURL})
}

func (h *AdminHandlers) ListOrders(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.orders.ListOrders(c.Request().Context(), shop.ID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load orders")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandlers) ListOrderItems(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items, err := h.orders.ListOrderItems(c.Request().Context(), shop.ID, orderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHandlers) UpdateOrderStatus(c echo.Context) error {
	shop, err := h.ownerShop(c)
	if err != nil {
		return err
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := h.orders.UpdateStatus(c.Request().Context(), shop.ID, orderID, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}
