package models

import (
	"time"

	"carelink-service/internal/pkg/constvars"
)

type Agency struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	LicenseNumber     string     `json:"license_number"`
	LicenseState      string     `json:"license_state"`
	Verified          bool       `json:"verified"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Email             string     `json:"email,omitempty"`
	Address           string     `json:"address,omitempty"`
	City              string     `json:"city,omitempty"`
	State             string     `json:"state"`
	ZipCode           string     `json:"zip_code,omitempty"`
	Services          []string   `json:"services"`
	AcceptingPatients bool       `json:"accepting_patients"`
	Description       string     `json:"description,omitempty"`
	TimeModel
}

// IsAvailable reports whether patients can currently ask to switch to the agency.
func (a *Agency) IsAvailable() bool {
	return a.Verified && a.AcceptingPatients && a.DeletedAt == nil
}

type AgencyMember struct {
	ID        string    `json:"id"`
	AgencyID  string    `json:"agency_id"`
	ProfileID string    `json:"profile_id"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *AgencyMember) CanManage() bool {
	return m.Role == constvars.MemberRoleOwner || m.Role == constvars.MemberRoleAdmin
}

func (m *AgencyMember) IsOwner() bool {
	return m.Role == constvars.MemberRoleOwner
}

// LicenseRecord is what the external licensing registry reports for a license.
type LicenseRecord struct {
	LicenseNumber string
	State         string
	Status        string
	HolderName    string
	ExpiresAt     *time.Time
}

func (l *LicenseRecord) IsActive() bool {
	return l.Status == "active" && (l.ExpiresAt == nil || l.ExpiresAt.After(time.Now()))
}
