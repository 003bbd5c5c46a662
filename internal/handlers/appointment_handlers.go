package handlers

import (
	"net/http"

	"slotbook/internal/common"
	"slotbook/internal/middleware"
	"slotbook/internal/models"
	"slotbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AppointmentHandlers handles appointment HTTP requests
type AppointmentHandlers struct {
	appointmentService  services.AppointmentService
	availabilityService services.AvailabilityService
	reminderService     services.ReminderService
}

func NewAppointmentHandlers(
	appointmentService services.AppointmentService,
	availabilityService services.AvailabilityService,
	reminderService services.ReminderService,
) *AppointmentHandlers {
	return &AppointmentHandlers{
		appointmentService:  appointmentService,
		availabilityService: availabilityService,
		reminderService:     reminderService,
	}
}

// ListAppointmentsRequest represents query parameters for listing
type ListAppointmentsRequest struct {
	Status     string `query:"status"`
	DateFrom   string `query:"date_from"`
	DateTo     string `query:"date_to"`
	EmployeeID string `query:"employee_id"`
}

// ListAppointments returns appointments. Admins see the whole tenant,
// clients only their own bookings.
func (h *AppointmentHandlers) ListAppointments(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req ListAppointmentsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	if req.Status != "" {
		if err := common.ValidateAppointmentStatus(req.Status); err != nil {
			return common.SendValidationError(c, "status", err.Error())
		}
	}
	if err := common.ValidateOptionalDate(req.DateFrom, "date_from"); err != nil {
		return common.SendValidationError(c, "date_from", err.Error())
	}
	if err := common.ValidateOptionalDate(req.DateTo, "date_to"); err != nil {
		return common.SendValidationError(c, "date_to", err.Error())
	}

	filter := models.AppointmentFilter{
		Status:   req.Status,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	}
	if req.EmployeeID != "" {
		employeeID, err := common.ValidateUUID(req.EmployeeID, "employee_id")
		if err != nil {
			return common.SendValidationError(c, "employee_id", err.Error())
		}
		filter.EmployeeID = employeeID
	}

	actor, _ := middleware.CurrentUser(c)
	list, err := h.appointmentService.List(ctx, tenantID, filter, actor)
	if err != nil {
		return respondServiceError(c, err, "appointments")
	}
	return c.JSON(http.StatusOK, list)
}

// AvailableSlotsRequest represents query parameters for the slot lookup
type AvailableSlotsRequest struct {
	EmployeeID string `query:"employee_id"`
	ServiceID  string `query:"service_id"`
	Date       string `query:"date"`
}

// AvailableSlots returns the free start times for an employee, service and date
func (h *AppointmentHandlers) AvailableSlots(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req AvailableSlotsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	employeeID, err := common.ValidateUUID(req.EmployeeID, "employee_id")
	if err != nil {
		return common.SendValidationError(c, "employee_id", err.Error())
	}
	serviceID, err := common.ValidateUUID(req.ServiceID, "service_id")
	if err != nil {
		return common.SendValidationError(c, "service_id", err.Error())
	}
	if err := common.ValidateDate(req.Date, "date"); err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}

	slots, err := h.availabilityService.AvailableSlots(ctx, tenantID, employeeID, serviceID, req.Date)
	if err != nil {
		return respondServiceError(c, err, "available slots")
	}
	return c.JSON(http.StatusOK, slots)
}

// CreateAppointmentRequest represents the booking payload
type CreateAppointmentRequest struct {
	ServiceID   uuid.UUID `json:"service_id"`
	EmployeeID  uuid.UUID `json:"employee_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ClientPhone *string   `json:"client_phone"`
	Notes       *string   `json:"notes"`
}

// CreateAppointment books a slot. Anonymous callers may book; a logged-in
// client is linked to the booking.
func (h *AppointmentHandlers) CreateAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateDate(req.Date, "date"); err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}
	if err := common.ValidateTimeOfDay(req.Time, "time"); err != nil {
		return common.SendValidationError(c, "time", err.Error())
	}

	var clientUserID *uuid.UUID
	if actor, ok := middleware.CurrentUser(c); ok {
		clientUserID = &actor.ID
	}

	appt, err := h.appointmentService.Create(ctx, &services.CreateAppointmentRequest{
		TenantID:     tenantID,
		ServiceID:    req.ServiceID,
		EmployeeID:   req.EmployeeID,
		Date:         req.Date,
		Time:         req.Time,
		ClientUserID: clientUserID,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		Notes:        req.Notes,
	})
	if err != nil {
		return respondServiceError(c, err, "appointment")
	}
	return c.JSON(http.StatusCreated, appt)
}

// GetAppointment returns one appointment
func (h *AppointmentHandlers) GetAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "appointment ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	actor, _ := middleware.CurrentUser(c)
	appt, err := h.appointmentService.GetByID(ctx, tenantID, id, actor)
	if err != nil {
		return respondServiceError(c, err, "appointment")
	}
	return c.JSON(http.StatusOK, appt)
}

// UpdateStatusRequest represents the status change payload
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus changes an appointment's status (admin only)
func (h *AppointmentHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "appointment ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	appt, err := h.appointmentService.SetStatus(ctx, tenantID, id, req.Status)
	if err != nil {
		return respondServiceError(c, err, "appointment")
	}
	return c.JSON(http.StatusOK, appt)
}

// RescheduleRequest represents the reschedule payload
type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Reschedule moves an appointment to a new date and time
func (h *AppointmentHandlers) Reschedule(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "appointment ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateDate(req.Date, "date"); err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}
	if err := common.ValidateTimeOfDay(req.Time, "time"); err != nil {
		return common.SendValidationError(c, "time", err.Error())
	}

	actor, _ := middleware.CurrentUser(c)
	appt, err := h.appointmentService.Reschedule(ctx, &services.RescheduleRequest{
		TenantID: tenantID,
		ID:       id,
		Date:     req.Date,
		Time:     req.Time,
	}, actor)
	if err != nil {
		return respondServiceError(c, err, "appointment")
	}
	return c.JSON(http.StatusOK, appt)
}

// CancelAppointment marks an appointment cancelled
func (h *AppointmentHandlers) CancelAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "appointment ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	actor, _ := middleware.CurrentUser(c)
	if err := h.appointmentService.Cancel(ctx, tenantID, id, actor); err != nil {
		return respondServiceError(c, err, "appointment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment cancelled"})
}

// PurgeAppointment hard-deletes an appointment (admin only)
func (h *AppointmentHandlers) PurgeAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "appointment ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.appointmentService.Purge(ctx, tenantID, id); err != nil {
		return respondServiceError(c, err, "appointment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment deleted"})
}

// SendReminderRequest controls which reminder emails go out
type SendReminderRequest struct {
	SendToClient   *bool `json:"send_to_client"`
	SendToEmployee *bool `json:"send_to_employee"`
}

// SendReminder emails reminders for one appointment (admin only)
func (h *AppointmentHandlers) SendReminder(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}
	id, err := common.ValidateUUID(c.Param("id"), "appointment ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	// Both targets default to true
	req := SendReminderRequest{}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	toClient := req.SendToClient == nil || *req.SendToClient
	toEmployee := req.SendToEmployee == nil || *req.SendToEmployee

	results, err := h.reminderService.SendAppointmentReminder(ctx, tenantID, id, toClient, toEmployee)
	if err != nil {
		return respondServiceError(c, err, "reminder")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Reminders processed",
		"results": results,
	})
}

// SendDailyRemindersRequest optionally pins the reminder date
type SendDailyRemindersRequest struct {
	Date string `json:"date" query:"date"`
}

// SendDailyReminders emails reminders for every active appointment on a date,
// defaulting to tomorrow (admin only)
func (h *AppointmentHandlers) SendDailyReminders(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Tenant not resolved")
	}

	var req SendDailyRemindersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateOptionalDate(req.Date, "date"); err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}

	report, err := h.reminderService.SendDailyReminders(ctx, tenantID, req.Date)
	if err != nil {
		return respondServiceError(c, err, "reminders")
	}
	return c.JSON(http.StatusOK, report)
}
