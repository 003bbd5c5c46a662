package handlers

import (
	"net/http"

	"slotbook/internal/common"
	"slotbook/internal/models"
	"slotbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BlockedTimeHandlers handles blocked-time HTTP requests (admin only)
type BlockedTimeHandlers struct {
	blockedTimeService services.BlockedTimeService
}

func NewBlockedTimeHandlers(blockedTimeService services.BlockedTimeService) *BlockedTimeHandlers {
	return &BlockedTimeHandlers{blockedTimeService: blockedTimeService}
}

// ListBlockedTimesRequest represents query parameters for listing blocks
type ListBlockedTimesRequest struct {
	EmployeeID string `query:"employee_id"`
	DateFrom   string `query:"date_from"`
	DateTo     string `query:"date_to"`
}

// ListBlockedTimes returns the tenant's blocked times
func (h *BlockedTimeHandlers) ListBlockedTimes(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req ListBlockedTimesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	if err := common.ValidateOptionalDate(req.DateFrom, "date_from"); err != nil {
		return common.SendValidationError(c, "date_from", err.Error())
	}
	if err := common.ValidateOptionalDate(req.DateTo, "date_to"); err != nil {
		return common.SendValidationError(c, "date_to", err.Error())
	}

	filter := models.BlockedTimeFilter{DateFrom: req.DateFrom, DateTo: req.DateTo}
	if req.EmployeeID != "" {
		employeeID, err := common.ValidateUUID(req.EmployeeID, "employee_id")
		if err != nil {
			return common.SendValidationError(c, "employee_id", err.Error())
		}
		filter.EmployeeID = employeeID
	}

	list, err := h.blockedTimeService.List(ctx, tenantID, filter)
	if err != nil {
		return respondServiceError(c, err, "blocked times")
	}
	return c.JSON(http.StatusOK, list)
}

// CreateBlockedTimeRequest represents the block creation payload. Omitting
// both times blocks the whole day.
type CreateBlockedTimeRequest struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       string    `json:"date"`
	StartTime  *string   `json:"start_time"`
	EndTime    *string   `json:"end_time"`
	Reason     string    `json:"reason"`
}

// CreateBlockedTime creates a block, refusing to cover existing appointments
func (h *BlockedTimeHandlers) CreateBlockedTime(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req CreateBlockedTimeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateDate(req.Date, "date"); err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}

	block, err := h.blockedTimeService.Create(ctx, &services.CreateBlockedTimeRequest{
		TenantID:   tenantID,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
	})
	if err != nil {
		return respondServiceError(c, err, "blocked time")
	}
	return c.JSON(http.StatusCreated, block)
}

// UpdateBlockedTimeRequest represents the block update payload
type UpdateBlockedTimeRequest struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       string    `json:"date"`
	StartTime  *string   `json:"start_time"`
	EndTime    *string   `json:"end_time"`
	Reason     string    `json:"reason"`
}

// UpdateBlockedTime replaces a block wholesale
func (h *BlockedTimeHandlers) UpdateBlockedTime(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "blocked time ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateBlockedTimeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateDate(req.Date, "date"); err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}

	block, err := h.blockedTimeService.Update(ctx, &services.UpdateBlockedTimeRequest{
		TenantID:   tenantID,
		ID:         id,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
	})
	if err != nil {
		return respondServiceError(c, err, "blocked time")
	}
	return c.JSON(http.StatusOK, block)
}

// DeleteBlockedTime removes a block
func (h *BlockedTimeHandlers) DeleteBlockedTime(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "blocked time ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.blockedTimeService.Delete(ctx, tenantID, id); err != nil {
		return respondServiceError(c, err, "blocked time")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Blocked time removed"})
}
