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

// Working window and slot grid, in minutes from midnight. Candidate starts run
// every 30 minutes from 08:00 through 19:30; a candidate is dropped only when
// it overlaps a block or an active appointment.
const (
	dayOpenMinute  = 8 * 60
	dayCloseMinute = 20 * 60
	slotStepMinute = 30
)

// DaySlots is the availability answer for one employee and date. A whole-day
// block yields no slots and a human-readable message.
type DaySlots struct {
	Slots   []string `json:"available_slots"`
	Message string   `json:"message,omitempty"`
}

type AvailabilityService interface {
	AvailableSlots(ctx context.Context, tenantID, employeeID, serviceID uuid.UUID, date string) (*DaySlots, error)
}

type availabilityService struct {
	serviceRepo     repositories.ServiceRepository
	appointmentRepo repositories.AppointmentRepository
	blockedTimeRepo repositories.BlockedTimeRepository
}

func NewAvailabilityService(
	serviceRepo repositories.ServiceRepository,
	appointmentRepo repositories.AppointmentRepository,
	blockedTimeRepo repositories.BlockedTimeRepository,
) AvailabilityService {
	return &availabilityService{
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		blockedTimeRepo: blockedTimeRepo,
	}
}

func (s *availabilityService) AvailableSlots(ctx context.Context, tenantID, employeeID, serviceID uuid.UUID, date string) (*DaySlots, error) {
	service, err := s.serviceRepo.GetByID(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("service: %w", ErrNotFound)
		}
		return nil, err
	}

	duration := service.Duration
	if duration <= 0 {
		duration = slotStepMinute
	}

	blocks, err := s.blockedTimeRepo.ListByEmployeeDate(ctx, tenantID, employeeID, date)
	if err != nil {
		return nil, err
	}
	for _, block := range blocks {
		if block.IsWholeDay {
			return &DaySlots{Slots: []string{}, Message: "This day is blocked"}, nil
		}
	}

	appointments, err := s.appointmentRepo.ListActiveByEmployeeDate(ctx, tenantID, employeeID, date)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for start := dayOpenMinute; start < dayCloseMinute; start += slotStepMinute {
		end := start + duration
		if slotIsFree(start, end, appointments, blocks) {
			slots = append(slots, clockFromMinute(start))
		}
	}
	return &DaySlots{Slots: slots}, nil
}

func slotIsFree(start, end int, appointments []*models.Appointment, blocks []*models.BlockedTime) bool {
	for _, appt := range appointments {
		apptStart, err := minuteOfDay(appt.Time)
		if err != nil {
			continue
		}
		apptDuration := appt.ServiceDuration
		if apptDuration <= 0 {
			apptDuration = slotStepMinute
		}
		if rangesOverlap(start, end, apptStart, apptStart+apptDuration) {
			return false
		}
	}
	for _, block := range blocks {
		if block.IsWholeDay || block.StartTime == nil || block.EndTime == nil {
			continue
		}
		blockStart, err1 := minuteOfDay(*block.StartTime)
		blockEnd, err2 := minuteOfDay(*block.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if rangesOverlap(start, end, blockStart, blockEnd) {
			return false
		}
	}
	return true
}

// rangesOverlap reports whether two half-open minute ranges intersect.
func rangesOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// minuteOfDay parses an HH:MM clock string into minutes from midnight.
func minuteOfDay(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	return h*60 + m, nil
}

func clockFromMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
