package auth

import (
	"context"
	"errors"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errInvalidCredentials = errors.New("invalid credentials")

type authUsecase struct {
	ProfileRepository contracts.ProfileRepository
	SessionService    contracts.SessionService
	AuditLogUsecase   contracts.AuditLogUsecase
	Log               *zap.Logger
}

func NewAuthUsecase(
	profileRepository contracts.ProfileRepository,
	sessionService contracts.SessionService,
	auditLogUsecase contracts.AuditLogUsecase,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		ProfileRepository: profileRepository,
		SessionService:    sessionService,
		AuditLogUsecase:   auditLogUsecase,
		Log:               logger,
	}
}

func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.Auth, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, request.Role),
	)

	// Admin accounts are only provisioned from the migration CLI.
	if request.Role != constvars.RolePatient && request.Role != constvars.RoleAgency {
		return nil, exceptions.ErrInputValidation(errors.New("role must be patient or agency"))
	}

	existing, err := uc.ProfileRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("authUsecase.Register error checking email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	profile := &models.Profile{
		ID:           uuid.NewString(),
		Email:        request.Email,
		PasswordHash: passwordHash,
		FullName:     request.FullName,
		Phone:        request.Phone,
		Role:         request.Role,
	}
	profile.SetCreatedAtUpdatedAt()

	err = uc.ProfileRepository.Create(ctx, profile)
	if err != nil {
		uc.Log.Error("authUsecase.Register error creating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response, err := uc.startSession(ctx, profile)
	if err != nil {
		return nil, err
	}

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    profile.ID,
		ActorRole:  profile.Role,
		Action:     constvars.AuditActionRegister,
		EntityType: constvars.AuditEntityProfile,
		EntityID:   profile.ID,
	})

	uc.Log.Info("authUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
	)
	return response, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.Auth, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	profile, err := uc.ProfileRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}

	// Unknown email and wrong password must be indistinguishable to the caller.
	if profile == nil || !utils.CheckPasswordHash(request.Password, profile.PasswordHash) {
		uc.Log.Warn("authUsecase.Login invalid credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(errInvalidCredentials)
	}

	response, err := uc.startSession(ctx, profile)
	if err != nil {
		return nil, err
	}

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    profile.ID,
		ActorRole:  profile.Role,
		Action:     constvars.AuditActionLogin,
		EntityType: constvars.AuditEntityProfile,
		EntityID:   profile.ID,
	})

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
	)
	return response, nil
}

func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, session.ProfileID),
	)

	err := uc.SessionService.DeleteSession(ctx, session.SessionID)
	if err != nil {
		uc.Log.Error("authUsecase.Logout error deleting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    session.ProfileID,
		ActorRole:  session.Role,
		Action:     constvars.AuditActionLogout,
		EntityType: constvars.AuditEntityProfile,
		EntityID:   session.ProfileID,
	})
	return nil
}

func (uc *authUsecase) startSession(ctx context.Context, profile *models.Profile) (*responses.Auth, error) {
	session, token, err := uc.SessionService.CreateSession(ctx, profile)
	if err != nil {
		uc.Log.Error("authUsecase.startSession error creating session",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.Auth{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Profile:   profile,
	}, nil
}
