package session

import (
	"context"
	"errors"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewSessionService(redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
	}
}

func (svc *sessionService) CreateSession(ctx context.Context, profile *models.Profile) (*models.Session, string, error) {
	ttl := time.Duration(svc.InternalConfig.App.LoginSessionExpiredTimeInHours) * time.Hour
	session := &models.Session{
		SessionID: uuid.NewString(),
		ProfileID: profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Role:      profile.Role,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	err := svc.RedisRepository.Set(ctx, utils.GenerateSessionKey(session.SessionID), session, ttl)
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, svc.InternalConfig.JWT.Secret, session.ExpiresAt)
	if err != nil {
		return nil, "", exceptions.ErrTokenGenerate(err)
	}

	return session, token, nil
}

func (svc *sessionService) GetSessionFromToken(ctx context.Context, token string) (*models.Session, error) {
	sessionID, err := utils.ParseJWT(token, svc.InternalConfig.JWT.Secret)
	if err != nil {
		return nil, exceptions.ErrTokenInvalid(err)
	}

	sessionData, err := svc.RedisRepository.Get(ctx, utils.GenerateSessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if sessionData == "" {
		return nil, exceptions.ErrSessionNotFound(errors.New("session expired or logged out"))
	}

	session := new(models.Session)
	err = json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, utils.GenerateSessionKey(sessionID))
}
