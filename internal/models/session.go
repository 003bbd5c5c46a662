package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque-token login session. Sessions live in Redis, not in
// Postgres; the token itself is the lookup key.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
