package contracts

import (
	"context"

	"carelink-service/internal/app/models"
)

type SessionService interface {
	CreateSession(ctx context.Context, profile *models.Profile) (session *models.Session, token string, err error)
	GetSessionFromToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
