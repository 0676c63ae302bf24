package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
)

type AgencyRepository interface {
	CreateWithOwner(ctx context.Context, agency *models.Agency, owner *models.AgencyMember) error
	FindByID(ctx context.Context, agencyID string) (*models.Agency, error)
	FindAll(ctx context.Context, request *requests.FindAllAgencies) ([]models.Agency, int, error)
	Update(ctx context.Context, agency *models.Agency) error
	SoftDelete(ctx context.Context, agencyID string, at time.Time) error
	MarkVerified(ctx context.Context, agencyID string, at time.Time) error
}

type AgencyMemberRepository interface {
	Create(ctx context.Context, member *models.AgencyMember) error
	FindByID(ctx context.Context, memberID string) (*models.AgencyMember, error)
	FindMembership(ctx context.Context, agencyID, profileID string) (*models.AgencyMember, error)
	FindAllByAgencyID(ctx context.Context, agencyID string) ([]models.AgencyMember, error)
	FindProfileIDsByAgencyID(ctx context.Context, agencyID string) ([]string, error)
	// DeleteUnlessLastOwner returns false when removing the member would leave the agency without an owner.
	DeleteUnlessLastOwner(ctx context.Context, agencyID, memberID string) (bool, error)
}

type AgencyUsecase interface {
	FindAll(ctx context.Context, session *models.Session, request *requests.FindAllAgencies) ([]models.Agency, int, error)
	FindByID(ctx context.Context, session *models.Session, agencyID string) (*models.Agency, error)
	Create(ctx context.Context, session *models.Session, request *requests.UpsertAgency) (*models.Agency, error)
	Update(ctx context.Context, session *models.Session, agencyID string, request *requests.UpsertAgency) (*models.Agency, error)
	Delete(ctx context.Context, session *models.Session, agencyID string) error
	Verify(ctx context.Context, session *models.Session, agencyID string) (*models.Agency, error)
	ListMembers(ctx context.Context, session *models.Session, agencyID string) ([]models.AgencyMember, error)
	AddMember(ctx context.Context, session *models.Session, agencyID string, request *requests.AddAgencyMember) (*models.AgencyMember, error)
	RemoveMember(ctx context.Context, session *models.Session, agencyID, memberID string) error
}
