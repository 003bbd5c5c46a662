package handlers

import (
	"net/http"

	"slotbook/internal/common"
	"slotbook/internal/services"

	"github.com/labstack/echo/v4"
)

// ServiceHandlers handles service catalog HTTP requests
type ServiceHandlers struct {
	catalogService services.CatalogService
}

func NewServiceHandlers(catalogService services.CatalogService) *ServiceHandlers {
	return &ServiceHandlers{catalogService: catalogService}
}

// ListServices returns the tenant's active services (public)
func (h *ServiceHandlers) ListServices(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	list, err := h.catalogService.List(ctx, tenantID, false)
	if err != nil {
		return respondServiceError(c, err, "services")
	}
	return c.JSON(http.StatusOK, list)
}

// ListAllServices returns every service including inactive ones (admin only)
func (h *ServiceHandlers) ListAllServices(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	list, err := h.catalogService.List(ctx, tenantID, true)
	if err != nil {
		return respondServiceError(c, err, "services")
	}
	return c.JSON(http.StatusOK, list)
}

// GetService returns one service by ID
func (h *ServiceHandlers) GetService(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "service ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	service, err := h.catalogService.GetByID(ctx, tenantID, id)
	if err != nil {
		return respondServiceError(c, err, "service")
	}
	return c.JSON(http.StatusOK, service)
}

// CreateServiceRequest represents the service creation payload
type CreateServiceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

// CreateService creates a catalog entry (admin only)
func (h *ServiceHandlers) CreateService(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	service, err := h.catalogService.Create(ctx, &services.CreateServiceRequest{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
	})
	if err != nil {
		return respondServiceError(c, err, "service")
	}
	return c.JSON(http.StatusCreated, service)
}

// UpdateServiceRequest represents the service update payload
type UpdateServiceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateService updates a catalog entry (admin only)
func (h *ServiceHandlers) UpdateService(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "service ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	service, err := h.catalogService.Update(ctx, &services.UpdateServiceRequest{
		TenantID:    tenantID,
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return respondServiceError(c, err, "service")
	}
	return c.JSON(http.StatusOK, service)
}

// DeleteService soft-deletes a catalog entry (admin only)
func (h *ServiceHandlers) DeleteService(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "service ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.catalogService.Delete(ctx, tenantID, id); err != nil {
		return respondServiceError(c, err, "service")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Service deactivated"})
}
