package handlers

import (
	"net/http"

	"slotbook/internal/common"
	"slotbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EmployeeHandlers handles employee HTTP requests
type EmployeeHandlers struct {
	employeeService services.EmployeeService
}

func NewEmployeeHandlers(employeeService services.EmployeeService) *EmployeeHandlers {
	return &EmployeeHandlers{employeeService: employeeService}
}

// ListEmployees returns the tenant's active employees (public)
func (h *EmployeeHandlers) ListEmployees(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	list, err := h.employeeService.List(ctx, tenantID, false)
	if err != nil {
		return respondServiceError(c, err, "employees")
	}
	return c.JSON(http.StatusOK, list)
}

// ListAllEmployees returns every employee including inactive ones (admin only)
func (h *EmployeeHandlers) ListAllEmployees(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	list, err := h.employeeService.List(ctx, tenantID, true)
	if err != nil {
		return respondServiceError(c, err, "employees")
	}
	return c.JSON(http.StatusOK, list)
}

// GetEmployee returns one employee by ID
func (h *EmployeeHandlers) GetEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "employee ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	employee, err := h.employeeService.GetByID(ctx, tenantID, id)
	if err != nil {
		return respondServiceError(c, err, "employee")
	}
	return c.JSON(http.StatusOK, employee)
}

// CreateEmployeeRequest represents the employee creation payload
type CreateEmployeeRequest struct {
	Name       string      `json:"name"`
	Email      *string     `json:"email"`
	Phone      *string     `json:"phone"`
	ServiceIDs []uuid.UUID `json:"service_ids"`
}

// CreateEmployee creates an employee (admin only)
func (h *EmployeeHandlers) CreateEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	employee, err := h.employeeService.Create(ctx, &services.CreateEmployeeRequest{
		TenantID:   tenantID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		return respondServiceError(c, err, "employee")
	}
	return c.JSON(http.StatusCreated, employee)
}

// UpdateEmployeeRequest represents the employee update payload
type UpdateEmployeeRequest struct {
	Name       string      `json:"name"`
	Email      *string     `json:"email"`
	Phone      *string     `json:"phone"`
	ServiceIDs []uuid.UUID `json:"service_ids"`
	IsActive   *bool       `json:"is_active"`
}

// UpdateEmployee updates an employee (admin only)
func (h *EmployeeHandlers) UpdateEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "employee ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	employee, err := h.employeeService.Update(ctx, &services.UpdateEmployeeRequest{
		TenantID:   tenantID,
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		ServiceIDs: req.ServiceIDs,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return respondServiceError(c, err, "employee")
	}
	return c.JSON(http.StatusOK, employee)
}

// DeleteEmployee soft-deletes an employee (admin only)
func (h *EmployeeHandlers) DeleteEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "employee ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.employeeService.Delete(ctx, tenantID, id); err != nil {
		return respondServiceError(c, err, "employee")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Employee deactivated"})
}
