package services

import (
	"context"
	"errors"
	"fmt"

	"slotbook/internal/models"
	"slotbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BlockedTimeService interface {
	// Create refuses to block over existing active appointments.
	Create(ctx context.Context, req *CreateBlockedTimeRequest) (*models.BlockedTime, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.BlockedTime, error)
	// Update replaces the block wholesale. Unlike Create it does not check
	// for appointments again; admins use it to shrink or move blocks around
	// bookings that already exist.
	Update(ctx context.Context, req *UpdateBlockedTimeRequest) (*models.BlockedTime, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, filter models.BlockedTimeFilter) ([]*models.BlockedTime, error)
}

type blockedTimeService struct {
	blockedTimeRepo repositories.BlockedTimeRepository
	appointmentRepo repositories.AppointmentRepository
	employeeRepo    repositories.EmployeeRepository
}

func NewBlockedTimeService(
	blockedTimeRepo repositories.BlockedTimeRepository,
	appointmentRepo repositories.AppointmentRepository,
	employeeRepo repositories.EmployeeRepository,
) BlockedTimeService {
	return &blockedTimeService{
		blockedTimeRepo: blockedTimeRepo,
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
	}
}

type CreateBlockedTimeRequest struct {
	TenantID   uuid.UUID
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       string    `json:"date"`
	StartTime  *string   `json:"start_time"`
	EndTime    *string   `json:"end_time"`
	Reason     string    `json:"reason"`
}

type UpdateBlockedTimeRequest struct {
	TenantID   uuid.UUID
	ID         uuid.UUID
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       string    `json:"date"`
	StartTime  *string   `json:"start_time"`
	EndTime    *string   `json:"end_time"`
	Reason     string    `json:"reason"`
}

func validateBlockWindow(startTime, endTime *string) (wholeDay bool, err error) {
	if startTime == nil && endTime == nil {
		return true, nil
	}
	if startTime == nil || endTime == nil {
		return false, fmt.Errorf("%w: start_time and end_time must be set together", ErrInvalidArgument)
	}
	start, err := minuteOfDay(*startTime)
	if err != nil {
		return false, fmt.Errorf("%w: start_time must be in HH:MM format", ErrInvalidArgument)
	}
	end, err := minuteOfDay(*endTime)
	if err != nil {
		return false, fmt.Errorf("%w: end_time must be in HH:MM format", ErrInvalidArgument)
	}
	if start >= end {
		return false, fmt.Errorf("%w: start_time must be before end_time", ErrInvalidArgument)
	}
	return false, nil
}

func (s *blockedTimeService) Create(ctx context.Context, req *CreateBlockedTimeRequest) (*models.BlockedTime, error) {
	wholeDay, err := validateBlockWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.TenantID, req.EmployeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, err
	}

	var busy bool
	if wholeDay {
		busy, err = s.appointmentRepo.HasActiveOnDate(ctx, req.TenantID, req.EmployeeID, req.Date)
	} else {
		busy, err = s.appointmentRepo.HasActiveInRange(ctx, req.TenantID, req.EmployeeID, req.Date, *req.StartTime, *req.EndTime)
	}
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, fmt.Errorf("%w: cannot block this time, there are existing appointments", ErrConflict)
	}

	block := &models.BlockedTime{
		ID:         uuid.New(),
		TenantID:   req.TenantID,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
		IsWholeDay: wholeDay,
	}
	if err := s.blockedTimeRepo.Create(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *blockedTimeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.BlockedTime, error) {
	block, err := s.blockedTimeRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("blocked time: %w", ErrNotFound)
		}
		return nil, err
	}
	return block, nil
}

func (s *blockedTimeService) Update(ctx context.Context, req *UpdateBlockedTimeRequest) (*models.BlockedTime, error) {
	wholeDay, err := validateBlockWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	existing.EmployeeID = req.EmployeeID
	existing.Date = req.Date
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime
	existing.Reason = req.Reason
	existing.IsWholeDay = wholeDay

	if err := s.blockedTimeRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *blockedTimeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.blockedTimeRepo.Delete(ctx, tenantID, id)
}

func (s *blockedTimeService) List(ctx context.Context, tenantID uuid.UUID, filter models.BlockedTimeFilter) ([]*models.BlockedTime, error) {
	return s.blockedTimeRepo.List(ctx, tenantID, filter)
}
