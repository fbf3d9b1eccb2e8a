package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dukaan/internal/auth"
)

// AuthHandlers signs shop owners in. Credentials live on the hosted auth
// provider; this endpoint just relays them and returns the session.
type AuthHandlers struct {
	provider auth.Provider
}

func NewAuthHandlers(provider auth.Provider) *AuthHandlers {
	return &AuthHandlers{provider: provider}
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	session, err := h.provider.SignInWithPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// The provider's message is what the login form shows.
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, session)
}
