package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"slotbook/internal/models"
	"slotbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AppointmentService interface {
	// Create books a slot. Callers may be anonymous; a logged-in client is
	// linked to the appointment through ClientUserID.
	Create(ctx context.Context, req *CreateAppointmentRequest) (*models.Appointment, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID, actor *models.User) (*models.Appointment, error)
	// List returns the tenant's appointments. Non-admin actors only ever see
	// their own bookings regardless of the filter.
	List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter, actor *models.User) ([]*models.Appointment, error)
	SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (*models.Appointment, error)
	Reschedule(ctx context.Context, req *RescheduleRequest, actor *models.User) (*models.Appointment, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID, actor *models.User) error
	// Purge hard-deletes an appointment. Admin only, enforced at the route.
	Purge(ctx context.Context, tenantID, id uuid.UUID) error
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	serviceRepo     repositories.ServiceRepository
	employeeRepo    repositories.EmployeeRepository
	blockedTimeRepo repositories.BlockedTimeRepository
}

func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	serviceRepo repositories.ServiceRepository,
	employeeRepo repositories.EmployeeRepository,
	blockedTimeRepo repositories.BlockedTimeRepository,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		blockedTimeRepo: blockedTimeRepo,
	}
}

type CreateAppointmentRequest struct {
	TenantID     uuid.UUID
	ServiceID    uuid.UUID `json:"service_id"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	ClientUserID *uuid.UUID
	ClientName   string  `json:"client_name"`
	ClientEmail  string  `json:"client_email"`
	ClientPhone  *string `json:"client_phone"`
	Notes        *string `json:"notes"`
}

type RescheduleRequest struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func (s *appointmentService) Create(ctx context.Context, req *CreateAppointmentRequest) (*models.Appointment, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, fmt.Errorf("%w: client_name is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(req.ClientEmail) == "" {
		return nil, fmt.Errorf("%w: client_email is required", ErrInvalidArgument)
	}
	if _, err := minuteOfDay(req.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidArgument)
	}

	taken, err := s.appointmentRepo.HasActiveSlot(ctx, req.TenantID, req.EmployeeID, req.Date, req.Time, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: this time slot is already booked", ErrConflict)
	}

	service, err := s.serviceRepo.GetByID(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("service: %w", ErrNotFound)
		}
		return nil, err
	}
	employee, err := s.employeeRepo.GetByID(ctx, req.TenantID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, err
	}

	duration := service.Duration
	if duration <= 0 {
		duration = slotStepMinute
	}

	start, _ := minuteOfDay(req.Time)
	if err := s.blockConflict(ctx, req.TenantID, req.EmployeeID, req.Date, start, start+duration); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:              uuid.New(),
		TenantID:        req.TenantID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		ServiceDuration: duration,
		EmployeeID:      employee.ID,
		EmployeeName:    employee.Name,
		Date:            req.Date,
		Time:            req.Time,
		ClientUserID:    req.ClientUserID,
		ClientName:      strings.TrimSpace(req.ClientName),
		ClientEmail:     strings.TrimSpace(req.ClientEmail),
		ClientPhone:     req.ClientPhone,
		Notes:           req.Notes,
		Status:          models.StatusPending,
	}
	if err := s.appointmentRepo.Create(ctx, appt); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSlot) {
			return nil, fmt.Errorf("%w: this time slot is already booked", ErrConflict)
		}
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) GetByID(ctx context.Context, tenantID, id uuid.UUID, actor *models.User) (*models.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("appointment: %w", ErrNotFound)
		}
		return nil, err
	}
	if err := checkOwnership(appt, actor); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter, actor *models.User) ([]*models.Appointment, error) {
	if actor != nil && !actor.IsAdmin() {
		filter.ClientUserID = actor.ID
	}
	return s.appointmentRepo.List(ctx, tenantID, filter)
}

func (s *appointmentService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (*models.Appointment, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidArgument, status)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("appointment: %w", ErrNotFound)
		}
		return nil, err
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, tenantID, id, status); err != nil {
		return nil, err
	}
	appt.Status = status
	return appt, nil
}

func (s *appointmentService) Reschedule(ctx context.Context, req *RescheduleRequest, actor *models.User) (*models.Appointment, error) {
	if _, err := minuteOfDay(req.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidArgument)
	}

	appt, err := s.GetByID(ctx, req.TenantID, req.ID, actor)
	if err != nil {
		return nil, err
	}

	duration := appt.ServiceDuration
	if duration <= 0 {
		duration = slotStepMinute
	}
	newStart, _ := minuteOfDay(req.Time)
	if err := s.blockConflict(ctx, req.TenantID, appt.EmployeeID, req.Date, newStart, newStart+duration); err != nil {
		return nil, err
	}

	taken, err := s.appointmentRepo.HasActiveSlot(ctx, req.TenantID, appt.EmployeeID, req.Date, req.Time, appt.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: new time slot is not available", ErrConflict)
	}

	if err := s.appointmentRepo.UpdateSchedule(ctx, req.TenantID, appt.ID, req.Date, req.Time); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSlot) {
			return nil, fmt.Errorf("%w: new time slot is not available", ErrConflict)
		}
		return nil, err
	}
	appt.Date = req.Date
	appt.Time = req.Time
	return appt, nil
}

func (s *appointmentService) Cancel(ctx context.Context, tenantID, id uuid.UUID, actor *models.User) error {
	appt, err := s.GetByID(ctx, tenantID, id, actor)
	if err != nil {
		return err
	}
	return s.appointmentRepo.UpdateStatus(ctx, tenantID, appt.ID, models.StatusCancelled)
}

func (s *appointmentService) Purge(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.appointmentRepo.GetByID(ctx, tenantID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("appointment: %w", ErrNotFound)
		}
		return err
	}
	return s.appointmentRepo.Delete(ctx, tenantID, id)
}

// blockConflict rejects a booking interval that collides with any block on the
// employee's day. Shared by create and reschedule so both paths use the same
// overlap primitive as availability.
func (s *appointmentService) blockConflict(ctx context.Context, tenantID, employeeID uuid.UUID, date string, start, end int) error {
	blocks, err := s.blockedTimeRepo.ListByEmployeeDate(ctx, tenantID, employeeID, date)
	if err != nil {
		return err
	}
	for _, block := range blocks {
		if block.IsWholeDay {
			return fmt.Errorf("%w: this day is blocked for the employee", ErrConflict)
		}
		if block.StartTime == nil || block.EndTime == nil {
			continue
		}
		blockStart, err1 := minuteOfDay(*block.StartTime)
		blockEnd, err2 := minuteOfDay(*block.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if rangesOverlap(start, end, blockStart, blockEnd) {
			reason := block.Reason
			if reason == "" {
				reason = "blocked time"
			}
			return fmt.Errorf("%w: time conflicts with a block (%s)", ErrConflict, reason)
		}
	}
	return nil
}

// checkOwnership lets admins through and restricts everyone else to their own
// appointments.
func checkOwnership(appt *models.Appointment, actor *models.User) error {
	if actor == nil || actor.IsAdmin() {
		return nil
	}
	if appt.ClientUserID != nil && *appt.ClientUserID == actor.ID {
		return nil
	}
	return fmt.Errorf("%w: appointment belongs to another client", ErrForbidden)
}
