package contracts

import (
	"context"

	"carelink-service/internal/app/models"
)

// AccessGuard evaluates row level predicates shared by several modules.
type AccessGuard interface {
	Membership(ctx context.Context, agencyID, profileID string) (*models.AgencyMember, error)
	CanViewSwitchRequest(ctx context.Context, session *models.Session, switchRequest *models.SwitchRequest) (bool, error)
	IsConversationParticipant(ctx context.Context, session *models.Session, conversation *models.Conversation) (bool, error)
}
