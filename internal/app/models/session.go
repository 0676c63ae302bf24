package models

import (
	"time"

	"carelink-service/internal/pkg/constvars"
)

// Session is stored as JSON in Redis and attached to the request context
// by the authentication middleware.
type Session struct {
	SessionID string    `json:"session_id"`
	ProfileID string    `json:"profile_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsAdmin() bool {
	return s.Role == constvars.RoleAdmin
}

func (s *Session) IsPatient() bool {
	return s.Role == constvars.RolePatient
}

func (s *Session) IsAgency() bool {
	return s.Role == constvars.RoleAgency
}
