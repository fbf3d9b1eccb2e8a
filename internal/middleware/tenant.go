package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dukaan/internal/services"
	"dukaan/internal/storefront"
)

const storefrontViewKey = "storefront_view"

// TenantMiddleware resolves the request host to a storefront view and stores
// it on the echo context. Unclaimed hosts still pass through, carrying the
// default view, so the public pages always render.
func TenantMiddleware(storefronts services.StorefrontService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			view, err := storefronts.GetStorefront(c.Request().Context(), c.Request().Host)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve storefront")
			}
			c.Set(storefrontViewKey, view)
			return next(c)
		}
	}
}

// GetStorefrontView returns the view the tenant middleware resolved for this
// request.
func GetStorefrontView(c echo.Context) (storefront.View, bool) {
	view, ok := c.Get(storefrontViewKey).(storefront.View)
	return view, ok
}
