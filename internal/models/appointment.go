package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. Pending and confirmed count toward slot conflicts;
// completed and cancelled do not.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ActiveStatuses are the statuses that occupy a slot.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a booking. Service name/price/duration and employee name are
// snapshotted at creation time so history and reports stay stable across later
// catalog edits.
type Appointment struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	TenantID        uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	ServiceID       uuid.UUID  `json:"service_id" db:"service_id"`
	ServiceName     string     `json:"service_name" db:"service_name"`
	ServicePrice    float64    `json:"service_price" db:"service_price"`
	ServiceDuration int        `json:"service_duration" db:"service_duration"` // minutes
	EmployeeID      uuid.UUID  `json:"employee_id" db:"employee_id"`
	EmployeeName    string     `json:"employee_name" db:"employee_name"`
	Date            string     `json:"date" db:"date"` // YYYY-MM-DD
	Time            string     `json:"time" db:"time"` // HH:MM
	ClientUserID    *uuid.UUID `json:"client_user_id,omitempty" db:"client_user_id"`
	ClientName      string     `json:"client_name" db:"client_name"`
	ClientEmail     string     `json:"client_email" db:"client_email"`
	ClientPhone     *string    `json:"client_phone,omitempty" db:"client_phone"`
	Notes           *string    `json:"notes,omitempty" db:"notes"`
	Status          string     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// AppointmentFilter narrows appointment listings. Zero values mean "no filter".
type AppointmentFilter struct {
	Status       string
	DateFrom     string
	DateTo       string
	EmployeeID   uuid.UUID
	ClientUserID uuid.UUID
}

// BlockedTimeFilter narrows blocked-time listings.
type BlockedTimeFilter struct {
	EmployeeID uuid.UUID
	DateFrom   string
	DateTo     string
}

// RevenueRow is one day of the revenue report.
type RevenueRow struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}
