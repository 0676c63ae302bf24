package agencies

import (
	"context"
	"errors"
	"strings"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type agencyUsecase struct {
	AgencyRepository       contracts.AgencyRepository
	AgencyMemberRepository contracts.AgencyMemberRepository
	ProfileRepository      contracts.ProfileRepository
	LicenseRegistryClient  contracts.LicenseRegistryClient
	AccessGuard            contracts.AccessGuard
	AuditLogUsecase        contracts.AuditLogUsecase
	Log                    *zap.Logger
}

func NewAgencyUsecase(
	agencyRepository contracts.AgencyRepository,
	agencyMemberRepository contracts.AgencyMemberRepository,
	profileRepository contracts.ProfileRepository,
	licenseRegistryClient contracts.LicenseRegistryClient,
	accessGuard contracts.AccessGuard,
	auditLogUsecase contracts.AuditLogUsecase,
	logger *zap.Logger,
) contracts.AgencyUsecase {
	return &agencyUsecase{
		AgencyRepository:       agencyRepository,
		AgencyMemberRepository: agencyMemberRepository,
		ProfileRepository:      profileRepository,
		LicenseRegistryClient:  licenseRegistryClient,
		AccessGuard:            accessGuard,
		AuditLogUsecase:        auditLogUsecase,
		Log:                    logger,
	}
}

func (uc *agencyUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindAllAgencies) ([]models.Agency, int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPageKey, request.Page),
		zap.Int(constvars.LoggingPageSizeKey, request.PageSize),
	)

	request.OnlyVerified = !session.IsAdmin()

	agencies, total, err := uc.AgencyRepository.FindAll(ctx, request)
	if err != nil {
		uc.Log.Error("agencyUsecase.FindAll error fetching agencies",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	uc.Log.Info("agencyUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(agencies)),
	)
	return agencies, total, nil
}

func (uc *agencyUsecase) FindByID(ctx context.Context, session *models.Session, agencyID string) (*models.Agency, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agencyID),
	)

	agency, err := uc.findExisting(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if agency.Verified || session.IsAdmin() {
		return agency, nil
	}

	// Members can still see their own agency while verification is pending.
	member, err := uc.AccessGuard.Membership(ctx, agencyID, session.ProfileID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityAgency, agencyID)
	}
	return agency, nil
}

func (uc *agencyUsecase) Create(ctx context.Context, session *models.Session, request *requests.UpsertAgency) (*models.Agency, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, session.ProfileID),
	)

	if !session.IsAgency() {
		return nil, exceptions.ErrRowAccessDenied(errors.New("only agency accounts create agencies"), session.ProfileID, constvars.AuditEntityAgency, "*")
	}

	agency := &models.Agency{
		ID:                uuid.NewString(),
		AcceptingPatients: true,
	}
	applyUpsert(agency, request)
	agency.SetCreatedAtUpdatedAt()

	owner := &models.AgencyMember{
		ID:        uuid.NewString(),
		AgencyID:  agency.ID,
		ProfileID: session.ProfileID,
		Role:      constvars.MemberRoleOwner,
		CreatedAt: agency.CreatedAt,
	}

	err := uc.AgencyRepository.CreateWithOwner(ctx, agency, owner)
	if err != nil {
		uc.Log.Error("agencyUsecase.Create error creating agency",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.record(ctx, session, constvars.AuditActionCreate, constvars.AuditEntityAgency, agency.ID, nil)

	uc.Log.Info("agencyUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agency.ID),
	)
	return agency, nil
}

func (uc *agencyUsecase) Update(ctx context.Context, session *models.Session, agencyID string, request *requests.UpsertAgency) (*models.Agency, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agencyID),
	)

	agency, err := uc.findExisting(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if err := uc.requireManager(ctx, session, agencyID); err != nil {
		return nil, err
	}

	licenseChanged := agency.LicenseNumber != request.LicenseNumber || agency.LicenseState != request.LicenseState
	applyUpsert(agency, request)
	if licenseChanged {
		agency.Verified = false
		agency.VerifiedAt = nil
	}
	agency.SetUpdatedAt()

	err = uc.AgencyRepository.Update(ctx, agency)
	if err != nil {
		uc.Log.Error("agencyUsecase.Update error updating agency",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.record(ctx, session, constvars.AuditActionUpdate, constvars.AuditEntityAgency, agency.ID, map[string]interface{}{
		"license_changed": licenseChanged,
	})

	uc.Log.Info("agencyUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agency.ID),
	)
	return agency, nil
}

func (uc *agencyUsecase) Delete(ctx context.Context, session *models.Session, agencyID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agencyID),
	)

	if !session.IsAdmin() {
		return exceptions.ErrRowAccessDenied(errors.New("admin only"), session.ProfileID, constvars.AuditEntityAgency, agencyID)
	}

	if _, err := uc.findExisting(ctx, agencyID); err != nil {
		return err
	}

	err := uc.AgencyRepository.SoftDelete(ctx, agencyID, time.Now().UTC())
	if err != nil {
		uc.Log.Error("agencyUsecase.Delete error deleting agency",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.record(ctx, session, constvars.AuditActionDelete, constvars.AuditEntityAgency, agencyID, nil)
	return nil
}

// Verify checks the agency license against the external registry and marks
// the agency verified when the registry returns the same license number,
// active in the agency's state. A registry outage surfaces as 502.
func (uc *agencyUsecase) Verify(ctx context.Context, session *models.Session, agencyID string) (*models.Agency, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.Verify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agencyID),
	)

	if !session.IsAdmin() {
		return nil, exceptions.ErrRowAccessDenied(errors.New("admin only"), session.ProfileID, constvars.AuditEntityAgency, agencyID)
	}

	agency, err := uc.findExisting(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	record, err := uc.LicenseRegistryClient.LookupLicense(ctx, agency.LicenseNumber, agency.LicenseState)
	if err != nil {
		uc.Log.Error("agencyUsecase.Verify error calling license registry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrLicenseNotVerified(errors.New("license not found"), agency.LicenseNumber, agency.LicenseState)
	}
	sameLicense := strings.EqualFold(strings.TrimSpace(record.LicenseNumber), strings.TrimSpace(agency.LicenseNumber))
	if !sameLicense || !record.IsActive() || record.State != agency.LicenseState {
		uc.Log.Warn("agencyUsecase.Verify license rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAgencyIDKey, agencyID),
			zap.String("license_status", record.Status),
			zap.String("registry_license_number", record.LicenseNumber),
		)
		return nil, exceptions.ErrLicenseNotVerified(nil, agency.LicenseNumber, agency.LicenseState)
	}

	now := time.Now().UTC()
	err = uc.AgencyRepository.MarkVerified(ctx, agencyID, now)
	if err != nil {
		return nil, err
	}
	agency.Verified = true
	agency.VerifiedAt = &now
	agency.UpdatedAt = now

	uc.record(ctx, session, constvars.AuditActionVerify, constvars.AuditEntityAgency, agencyID, map[string]interface{}{
		"license_number": agency.LicenseNumber,
		"license_state":  agency.LicenseState,
	})

	uc.Log.Info("agencyUsecase.Verify succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agencyID),
	)
	return agency, nil
}

func (uc *agencyUsecase) ListMembers(ctx context.Context, session *models.Session, agencyID string) ([]models.AgencyMember, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.ListMembers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agencyID),
	)

	if _, err := uc.findExisting(ctx, agencyID); err != nil {
		return nil, err
	}

	if !session.IsAdmin() {
		member, err := uc.AccessGuard.Membership(ctx, agencyID, session.ProfileID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, exceptions.ErrRowAccessDenied(errors.New("not a member"), session.ProfileID, constvars.AuditEntityAgency, agencyID)
		}
	}

	return uc.AgencyMemberRepository.FindAllByAgencyID(ctx, agencyID)
}

func (uc *agencyUsecase) AddMember(ctx context.Context, session *models.Session, agencyID string, request *requests.AddAgencyMember) (*models.AgencyMember, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.AddMember called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agencyID),
		zap.String(constvars.LoggingRoleKey, request.Role),
	)

	if _, err := uc.findExisting(ctx, agencyID); err != nil {
		return nil, err
	}

	if !session.IsAdmin() {
		caller, err := uc.AccessGuard.Membership(ctx, agencyID, session.ProfileID)
		if err != nil {
			return nil, err
		}
		if caller == nil || !caller.CanManage() {
			return nil, exceptions.ErrRowAccessDenied(errors.New("owner or admin member required"), session.ProfileID, constvars.AuditEntityAgency, agencyID)
		}
		if request.Role != constvars.MemberRoleStaff && !caller.IsOwner() {
			return nil, exceptions.ErrRowAccessDenied(errors.New("only owners grant owner or admin"), session.ProfileID, constvars.AuditEntityAgencyMember, agencyID)
		}
	}

	profile, err := uc.ProfileRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityProfile, request.Email)
	}
	if profile.Role != constvars.RoleAgency {
		return nil, exceptions.ErrMemberProfileNotAgency(nil, profile.ID, profile.Role)
	}

	member := &models.AgencyMember{
		ID:        uuid.NewString(),
		AgencyID:  agencyID,
		ProfileID: profile.ID,
		Role:      request.Role,
		Email:     profile.Email,
		FullName:  profile.FullName,
		CreatedAt: time.Now().UTC(),
	}

	err = uc.AgencyMemberRepository.Create(ctx, member)
	if err != nil {
		uc.Log.Error("agencyUsecase.AddMember error creating member",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.record(ctx, session, constvars.AuditActionMemberAdded, constvars.AuditEntityAgencyMember, member.ID, map[string]interface{}{
		"agency_id":  agencyID,
		"profile_id": profile.ID,
		"role":       member.Role,
	})

	uc.Log.Info("agencyUsecase.AddMember succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMemberIDKey, member.ID),
	)
	return member, nil
}

func (uc *agencyUsecase) RemoveMember(ctx context.Context, session *models.Session, agencyID, memberID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("agencyUsecase.RemoveMember called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAgencyIDKey, agencyID),
		zap.String(constvars.LoggingMemberIDKey, memberID),
	)

	if !session.IsAdmin() {
		caller, err := uc.AccessGuard.Membership(ctx, agencyID, session.ProfileID)
		if err != nil {
			return err
		}
		if caller == nil || !caller.IsOwner() {
			return exceptions.ErrRowAccessDenied(errors.New("owner required"), session.ProfileID, constvars.AuditEntityAgency, agencyID)
		}
	}

	member, err := uc.AgencyMemberRepository.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil || member.AgencyID != agencyID {
		return exceptions.ErrNotFound(nil, constvars.AuditEntityAgencyMember, memberID)
	}

	removed, err := uc.AgencyMemberRepository.DeleteUnlessLastOwner(ctx, agencyID, memberID)
	if err != nil {
		uc.Log.Error("agencyUsecase.RemoveMember error deleting member",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !removed {
		return exceptions.ErrLastOwner(nil, agencyID)
	}

	uc.record(ctx, session, constvars.AuditActionMemberRemoved, constvars.AuditEntityAgencyMember, memberID, map[string]interface{}{
		"agency_id":  agencyID,
		"profile_id": member.ProfileID,
	})
	return nil
}

func (uc *agencyUsecase) findExisting(ctx context.Context, agencyID string) (*models.Agency, error) {
	agency, err := uc.AgencyRepository.FindByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityAgency, agencyID)
	}
	return agency, nil
}

// requireManager passes platform admins and owner/admin members of the agency.
func (uc *agencyUsecase) requireManager(ctx context.Context, session *models.Session, agencyID string) error {
	if session.IsAdmin() {
		return nil
	}
	member, err := uc.AccessGuard.Membership(ctx, agencyID, session.ProfileID)
	if err != nil {
		return err
	}
	if member == nil || !member.CanManage() {
		return exceptions.ErrRowAccessDenied(errors.New("owner or admin member required"), session.ProfileID, constvars.AuditEntityAgency, agencyID)
	}
	return nil
}

func (uc *agencyUsecase) record(ctx context.Context, session *models.Session, action, entityType, entityID string, metadata map[string]interface{}) {
	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    session.ProfileID,
		ActorRole:  session.Role,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	})
}

func applyUpsert(agency *models.Agency, request *requests.UpsertAgency) {
	agency.Name = request.Name
	agency.LicenseNumber = request.LicenseNumber
	agency.LicenseState = request.LicenseState
	agency.Phone = request.Phone
	agency.Email = request.Email
	agency.Address = request.Address
	agency.City = request.City
	agency.State = request.State
	agency.ZipCode = request.ZipCode
	agency.Services = request.Services
	if agency.Services == nil {
		agency.Services = []string{}
	}
	if request.AcceptingPatients != nil {
		agency.AcceptingPatients = *request.AcceptingPatients
	}
	agency.Description = request.Description
}
