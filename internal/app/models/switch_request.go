package models

import (
	"time"

	"carelink-service/internal/pkg/constvars"
)

type SwitchRequest struct {
	ID                 string     `json:"id"`
	PatientID          string     `json:"patient_id"`
	CurrentAgencyID    string     `json:"current_agency_id,omitempty"`
	NewAgencyID        string     `json:"new_agency_id"`
	Status             string     `json:"status"`
	Reason             string     `json:"reason"`
	CareNeeds          string     `json:"care_needs,omitempty"`
	PreferredStartDate *time.Time `json:"preferred_start_date,omitempty"`
	ReviewerID         string     `json:"reviewer_id,omitempty"`
	DecisionNote       string     `json:"decision_note,omitempty"`
	SubmittedAt        time.Time  `json:"submitted_at"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
	DecidedAt          *time.Time `json:"decided_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	RemindedAt         *time.Time `json:"reminded_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (s *SwitchRequest) IsTerminal() bool {
	return IsTerminalSwitchRequestStatus(s.Status)
}

func IsTerminalSwitchRequestStatus(status string) bool {
	switch status {
	case constvars.SwitchRequestStatusDenied,
		constvars.SwitchRequestStatusCompleted,
		constvars.SwitchRequestStatusCancelled:
		return true
	}
	return false
}

type SwitchRequestStatusHistory struct {
	ID              string    `json:"id"`
	SwitchRequestID string    `json:"switch_request_id"`
	FromStatus      string    `json:"from_status,omitempty"`
	ToStatus        string    `json:"to_status"`
	ActorID         string    `json:"actor_id"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SwitchRequestTransition carries everything the guarded status update
// writes in a single transaction.
type SwitchRequestTransition struct {
	SwitchRequestID string
	FromStatus      string
	ToStatus        string
	ActorID         string
	Note            string
	At              time.Time
	History         *SwitchRequestStatusHistory
	// MovePatientToAgencyID is set when the patient's current agency changes.
	MovePatientToAgencyID string
	PatientID             string
}
