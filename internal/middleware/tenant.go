package middleware

import (
	"context"
	"net/http"

	"slotbook/internal/common"
	"slotbook/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantResolver makes sure every request carries a tenant ID. A session
// already pins its user's tenant; otherwise the tenant is derived from the
// request host, provisioning it on first sight. Stacks after Session.
func TenantResolver(tenantSvc services.TenantService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := common.GetTenantIDFromContext(c.Request().Context()); ok {
				return next(c)
			}

			tenant, err := tenantSvc.ResolveByHost(c.Request().Context(), c.Request().Host)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, common.CreateErrorResponse("SERVER_ERROR", "Failed to resolve tenant", nil))
			}

			ctx := context.WithValue(c.Request().Context(), common.TenantIDKey, tenant.ID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
