package access

import (
	"context"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
)

// accessGuard holds the row predicates shared across modules. Only members of
// the receiving agency see a switch request; the patient's current agency does not.
type accessGuard struct {
	AgencyMemberRepository contracts.AgencyMemberRepository
}

func NewAccessGuard(agencyMemberRepository contracts.AgencyMemberRepository) contracts.AccessGuard {
	return &accessGuard{AgencyMemberRepository: agencyMemberRepository}
}

// Membership returns nil when the profile is not a member of the agency.
func (g *accessGuard) Membership(ctx context.Context, agencyID, profileID string) (*models.AgencyMember, error) {
	if agencyID == "" || profileID == "" {
		return nil, nil
	}
	return g.AgencyMemberRepository.FindMembership(ctx, agencyID, profileID)
}

func (g *accessGuard) CanViewSwitchRequest(ctx context.Context, session *models.Session, switchRequest *models.SwitchRequest) (bool, error) {
	switch {
	case session.IsAdmin():
		return true, nil
	case session.IsPatient():
		return switchRequest.PatientID == session.ProfileID, nil
	case session.IsAgency():
		member, err := g.Membership(ctx, switchRequest.NewAgencyID, session.ProfileID)
		if err != nil {
			return false, err
		}
		return member != nil, nil
	}
	return false, nil
}

// IsConversationParticipant is false for platform admins; they may read but not post.
func (g *accessGuard) IsConversationParticipant(ctx context.Context, session *models.Session, conversation *models.Conversation) (bool, error) {
	switch {
	case session.IsPatient():
		return conversation.PatientID == session.ProfileID, nil
	case session.IsAgency():
		member, err := g.Membership(ctx, conversation.AgencyID, session.ProfileID)
		if err != nil {
			return false, err
		}
		return member != nil, nil
	}
	return false, nil
}
