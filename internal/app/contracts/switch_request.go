package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
)

type SwitchRequestRepository interface {
	// Create inserts the request, its first history row and its conversation atomically.
	Create(ctx context.Context, switchRequest *models.SwitchRequest, history *models.SwitchRequestStatusHistory, conversation *models.Conversation) error
	FindByID(ctx context.Context, switchRequestID string) (*models.SwitchRequest, error)
	FindAll(ctx context.Context, request *requests.FindAllSwitchRequests) ([]models.SwitchRequest, int, error)
	ExistsOpenForAgency(ctx context.Context, patientID, newAgencyID string) (bool, error)
	ApplyTransition(ctx context.Context, transition *models.SwitchRequestTransition) (*models.SwitchRequest, error)
	FindHistory(ctx context.Context, switchRequestID string) ([]models.SwitchRequestStatusHistory, error)
	FindStaleSubmitted(ctx context.Context, submittedBefore time.Time, limit int) ([]models.SwitchRequest, error)
	MarkReminded(ctx context.Context, switchRequestID string, at time.Time) error
}

type SwitchRequestUsecase interface {
	Create(ctx context.Context, session *models.Session, request *requests.CreateSwitchRequest) (*responses.SwitchRequestDetail, error)
	FindAll(ctx context.Context, session *models.Session, request *requests.FindAllSwitchRequests) ([]models.SwitchRequest, int, error)
	FindByID(ctx context.Context, session *models.Session, switchRequestID string) (*responses.SwitchRequestDetail, error)
	UpdateStatus(ctx context.Context, session *models.Session, switchRequestID string, request *requests.UpdateSwitchRequestStatus) (*responses.SwitchRequestDetail, error)
	History(ctx context.Context, session *models.Session, switchRequestID string) ([]models.SwitchRequestStatusHistory, error)
	// LoadVisible returns the request if the caller may see it, for modules hanging off a request.
	LoadVisible(ctx context.Context, session *models.Session, switchRequestID string) (*models.SwitchRequest, error)
}
