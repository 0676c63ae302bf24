package switchrequests

import (
	"testing"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	patient := transitionActor{session: &models.Session{ProfileID: "patient-1", Role: constvars.RolePatient}}
	otherPatient := transitionActor{session: &models.Session{ProfileID: "patient-2", Role: constvars.RolePatient}}
	staff := transitionActor{
		session: &models.Session{ProfileID: "staff-1", Role: constvars.RoleAgency},
		member:  &models.AgencyMember{Role: constvars.MemberRoleStaff},
	}
	manager := transitionActor{
		session: &models.Session{ProfileID: "owner-1", Role: constvars.RoleAgency},
		member:  &models.AgencyMember{Role: constvars.MemberRoleOwner},
	}
	outsider := transitionActor{session: &models.Session{ProfileID: "agency-x", Role: constvars.RoleAgency}}
	admin := transitionActor{session: &models.Session{ProfileID: "admin-1", Role: constvars.RoleAdmin}}

	tests := []struct {
		name  string
		from  string
		to    string
		actor transitionActor
		want  bool
	}{
		{"staff starts review", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusUnderReview, staff, true},
		{"outsider cannot review", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusUnderReview, outsider, false},
		{"patient cannot review", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusUnderReview, patient, false},
		{"patient cancels submitted", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusCancelled, patient, true},
		{"other patient cannot cancel", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusCancelled, otherPatient, false},
		{"agency cannot cancel", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusCancelled, manager, false},
		{"staff cannot accept", constvars.SwitchRequestStatusUnderReview, constvars.SwitchRequestStatusAccepted, staff, false},
		{"manager accepts", constvars.SwitchRequestStatusUnderReview, constvars.SwitchRequestStatusAccepted, manager, true},
		{"manager denies", constvars.SwitchRequestStatusUnderReview, constvars.SwitchRequestStatusDenied, manager, true},
		{"manager completes", constvars.SwitchRequestStatusAccepted, constvars.SwitchRequestStatusCompleted, manager, true},
		{"patient cancels accepted", constvars.SwitchRequestStatusAccepted, constvars.SwitchRequestStatusCancelled, patient, true},
		{"admin completes", constvars.SwitchRequestStatusAccepted, constvars.SwitchRequestStatusCompleted, admin, true},
		{"skip review", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusAccepted, admin, false},
		{"reopen denied", constvars.SwitchRequestStatusDenied, constvars.SwitchRequestStatusUnderReview, admin, false},
		{"cancel completed", constvars.SwitchRequestStatusCompleted, constvars.SwitchRequestStatusCancelled, admin, false},
		{"same status", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusSubmitted, admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := &models.SwitchRequest{PatientID: "patient-1", Status: tt.from}
			assert.Equal(t, tt.want, canTransition(sr, tt.to, tt.actor))
		})
	}
}

func TestAllowedTransitions(t *testing.T) {
	sr := &models.SwitchRequest{PatientID: "patient-1", Status: constvars.SwitchRequestStatusUnderReview}

	admin := transitionActor{session: &models.Session{Role: constvars.RoleAdmin}}
	assert.Equal(t, []string{
		constvars.SwitchRequestStatusAccepted,
		constvars.SwitchRequestStatusCancelled,
		constvars.SwitchRequestStatusDenied,
	}, allowedTransitions(sr, admin))

	patient := transitionActor{session: &models.Session{ProfileID: "patient-1", Role: constvars.RolePatient}}
	assert.Equal(t, []string{constvars.SwitchRequestStatusCancelled}, allowedTransitions(sr, patient))

	sr.Status = constvars.SwitchRequestStatusCompleted
	assert.Empty(t, allowedTransitions(sr, admin))
}
