package profiles

import (
	"context"
	"errors"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type profileUsecase struct {
	ProfileRepository contracts.ProfileRepository
	AuditLogUsecase   contracts.AuditLogUsecase
	Log               *zap.Logger
}

func NewProfileUsecase(
	profileRepository contracts.ProfileRepository,
	auditLogUsecase contracts.AuditLogUsecase,
	logger *zap.Logger,
) contracts.ProfileUsecase {
	return &profileUsecase{
		ProfileRepository: profileRepository,
		AuditLogUsecase:   auditLogUsecase,
		Log:               logger,
	}
}

func (uc *profileUsecase) GetMe(ctx context.Context, session *models.Session) (*models.Profile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("profileUsecase.GetMe called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, session.ProfileID),
	)

	return uc.findExisting(ctx, session.ProfileID)
}

func (uc *profileUsecase) UpdateMe(ctx context.Context, session *models.Session, request *requests.UpdateProfile) (*models.Profile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("profileUsecase.UpdateMe called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, session.ProfileID),
	)

	profile, err := uc.findExisting(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	dateOfBirth, err := utils.ParseOptionalDate(request.DateOfBirth)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	profile.FullName = request.FullName
	profile.Phone = request.Phone
	profile.DateOfBirth = dateOfBirth
	profile.Address = request.Address
	profile.SetUpdatedAt()

	err = uc.ProfileRepository.Update(ctx, profile)
	if err != nil {
		uc.Log.Error("profileUsecase.UpdateMe error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    session.ProfileID,
		ActorRole:  session.Role,
		Action:     constvars.AuditActionUpdate,
		EntityType: constvars.AuditEntityProfile,
		EntityID:   profile.ID,
	})

	uc.Log.Info("profileUsecase.UpdateMe succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
	)
	return profile, nil
}

func (uc *profileUsecase) FindByID(ctx context.Context, session *models.Session, profileID string) (*models.Profile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("profileUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, profileID),
	)

	if !session.IsAdmin() && session.ProfileID != profileID {
		return nil, exceptions.ErrRowAccessDenied(errors.New("profile belongs to someone else"), session.ProfileID, constvars.AuditEntityProfile, profileID)
	}

	return uc.findExisting(ctx, profileID)
}

func (uc *profileUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindAllProfiles) ([]models.Profile, int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("profileUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPageKey, request.Page),
		zap.Int(constvars.LoggingPageSizeKey, request.PageSize),
	)

	if !session.IsAdmin() {
		return nil, 0, exceptions.ErrRowAccessDenied(errors.New("admin only"), session.ProfileID, constvars.AuditEntityProfile, "*")
	}

	profiles, total, err := uc.ProfileRepository.FindAll(ctx, request)
	if err != nil {
		uc.Log.Error("profileUsecase.FindAll error fetching profiles",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	uc.Log.Info("profileUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(profiles)),
	)
	return profiles, total, nil
}

func (uc *profileUsecase) findExisting(ctx context.Context, profileID string) (*models.Profile, error) {
	profile, err := uc.ProfileRepository.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityProfile, profileID)
	}
	return profile, nil
}
