package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"slotbook/internal/common"
	"slotbook/internal/models"
	"slotbook/internal/services"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the opaque session token. The
// cookie wins over an Authorization bearer token when both are present.
const SessionCookieName = "session_token"

const currentUserKey = "current_user"

// SessionToken extracts the session token from the request, preferring the
// cookie over the Authorization header.
func SessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}
	return ""
}

// Session attaches the authenticated user to the request context when a
// valid token is present. Requests without a usable session pass through
// untouched; routes that need a user stack RequireSession on top.
func Session(authSvc services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := SessionToken(c)
			if token == "" {
				return next(c)
			}

			user, _, err := authSvc.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, services.ErrUnauthenticated) {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to authenticate session")
			}

			c.Set(currentUserKey, user)
			ctx := context.WithValue(c.Request().Context(), common.TenantIDKey, user.TenantID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireSession rejects requests that did not authenticate.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentUser(c); !ok {
				return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin callers. Stacks on top of Session.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
			}
			if !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, common.CreateErrorResponse("FORBIDDEN", "Admin access required", nil))
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user attached by Session, if any.
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(currentUserKey).(*models.User)
	return user, ok && user != nil
}
