package models

import "time"

type Profile struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	FullName        string     `json:"full_name"`
	Phone           string     `json:"phone,omitempty"`
	Role            string     `json:"role"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	Address         string     `json:"address,omitempty"`
	CurrentAgencyID string     `json:"current_agency_id,omitempty"`
	TimeModel
}
