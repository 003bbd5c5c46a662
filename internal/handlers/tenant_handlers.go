package handlers

import (
	"net/http"

	"slotbook/internal/common"
	"slotbook/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles tenant-related HTTP requests
type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// GetTenant returns the tenant resolved for this request
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	tenant, err := h.tenantService.GetByID(ctx, tenantID)
	if err != nil {
		return respondServiceError(c, err, "tenant")
	}
	return c.JSON(http.StatusOK, tenant)
}

// UpdateTenantRequest represents the tenant update payload
type UpdateTenantRequest struct {
	Name string `json:"name"`
}

// UpdateTenant updates tenant settings (admin only)
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenant, err := h.tenantService.Update(ctx, &services.UpdateTenantRequest{
		ID:   tenantID,
		Name: req.Name,
	})
	if err != nil {
		return respondServiceError(c, err, "tenant")
	}
	return c.JSON(http.StatusOK, tenant)
}
