package handlers

import (
	"net/http"

	"slotbook/internal/common"
	"slotbook/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandlers handles reporting HTTP requests (admin only)
type ReportHandlers struct {
	reportService services.ReportService
}

func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// RevenueReportRequest represents query parameters for the revenue report
type RevenueReportRequest struct {
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
}

// RevenueReport summarizes completed appointments over a date range
func (h *ReportHandlers) RevenueReport(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req RevenueReportRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	if err := common.ValidateDate(req.DateFrom, "date_from"); err != nil {
		return common.SendValidationError(c, "date_from", err.Error())
	}
	if err := common.ValidateDate(req.DateTo, "date_to"); err != nil {
		return common.SendValidationError(c, "date_to", err.Error())
	}

	report, err := h.reportService.Revenue(ctx, tenantID, req.DateFrom, req.DateTo)
	if err != nil {
		return respondServiceError(c, err, "revenue report")
	}
	return c.JSON(http.StatusOK, report)
}
