package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dukaan/internal/common"
	"dukaan/internal/services"
)

// SuperAdminMiddleware restricts a route group to users on the super-admin
// allow-list. It runs after AuthMiddleware, which puts the user id on the
// context.
func SuperAdminMiddleware(provisioning services.ProvisioningService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := common.GetUserIDFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			isAdmin, err := provisioning.IsSuperAdmin(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check admin access")
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			return next(c)
		}
	}
}
