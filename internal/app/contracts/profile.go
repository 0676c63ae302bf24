package contracts

import (
	"context"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByID(ctx context.Context, profileID string) (*models.Profile, error)
	FindByIDs(ctx context.Context, profileIDs []string) ([]models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindAll(ctx context.Context, request *requests.FindAllProfiles) ([]models.Profile, int, error)
	Update(ctx context.Context, profile *models.Profile) error
}

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.Auth, error)
	Login(ctx context.Context, request *requests.LoginUser) (*responses.Auth, error)
	Logout(ctx context.Context, session *models.Session) error
}

type ProfileUsecase interface {
	GetMe(ctx context.Context, session *models.Session) (*models.Profile, error)
	UpdateMe(ctx context.Context, session *models.Session, request *requests.UpdateProfile) (*models.Profile, error)
	FindByID(ctx context.Context, session *models.Session, profileID string) (*models.Profile, error)
	FindAll(ctx context.Context, session *models.Session, request *requests.FindAllProfiles) ([]models.Profile, int, error)
}
