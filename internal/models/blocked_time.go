package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockedTime marks an employee as unbookable on a date. Both times nil means
// a whole-day block; both set means a range block. One set and one nil is
// rejected as invalid input before it ever reaches the repository.
type BlockedTime struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`
	Date       string    `json:"date" db:"date"`             // YYYY-MM-DD
	StartTime  *string   `json:"start_time" db:"start_time"` // HH:MM
	EndTime    *string   `json:"end_time" db:"end_time"`     // HH:MM
	Reason     string    `json:"reason" db:"reason"`
	IsWholeDay bool      `json:"is_whole_day" db:"is_whole_day"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
