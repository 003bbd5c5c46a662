package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a bookable staff member. ServiceIDs restricts which services the
// employee advertises; booking logic does not enforce it.
type Employee struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	TenantID   uuid.UUID   `json:"tenant_id" db:"tenant_id"`
	Name       string      `json:"name" db:"name"`
	Email      *string     `json:"email,omitempty" db:"email"`
	Phone      *string     `json:"phone,omitempty" db:"phone"`
	ServiceIDs []uuid.UUID `json:"service_ids" db:"service_ids"`
	IsActive   bool        `json:"is_active" db:"is_active"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}
