package handlers

import (
	"net/http"
	"time"

	"slotbook/internal/common"
	"slotbook/internal/middleware"
	"slotbook/internal/models"
	"slotbook/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest carries the provider session ID from the login redirect.
type LoginRequest struct {
	SessionID string `json:"session_id"`
}

// LoginResponse is the login payload: the user plus the opaque token, which
// is also set as a cookie for browser clients.
type LoginResponse struct {
	User         *models.User `json:"user"`
	SessionToken string       `json:"session_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// Login exchanges a provider session ID for a local session
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.SessionID == "" {
		return common.SendValidationError(c, "session_id", "session_id is required")
	}

	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	user, session, err := h.authService.Login(c.Request().Context(), tenantID, req.SessionID)
	if err != nil {
		return respondServiceError(c, err, "session")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return c.JSON(http.StatusOK, &LoginResponse{
		User:         user,
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	})
}

// Me returns the authenticated user
func (h *AuthHandlers) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	return c.JSON(http.StatusOK, user)
}

// Logout revokes the current session and clears the cookie
func (h *AuthHandlers) Logout(c echo.Context) error {
	token := middleware.SessionToken(c)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return respondServiceError(c, err, "session")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}
