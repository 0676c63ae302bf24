package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	FindByID(ctx context.Context, documentID string) (*models.Document, error)
	FindAllBySwitchRequestID(ctx context.Context, switchRequestID string) ([]models.Document, error)
	// SoftDeleteIfUnsigned returns false when an e-signature references the document.
	SoftDeleteIfUnsigned(ctx context.Context, documentID string, at time.Time) (bool, error)
}

type DocumentUsecase interface {
	Upload(ctx context.Context, session *models.Session, request *requests.UploadDocument) (*responses.Document, error)
	ListBySwitchRequest(ctx context.Context, session *models.Session, switchRequestID string) ([]models.Document, error)
	FindByID(ctx context.Context, session *models.Session, documentID string) (*responses.Document, error)
	Delete(ctx context.Context, session *models.Session, documentID string) error
}

type ESignatureRepository interface {
	Create(ctx context.Context, signature *models.ESignature) error
	FindByID(ctx context.Context, signatureID string) (*models.ESignature, error)
	FindAllBySwitchRequestID(ctx context.Context, switchRequestID string) ([]models.ESignature, error)
	ExistsForSigner(ctx context.Context, signerID, documentID, switchRequestID string) (bool, error)
}

type ESignatureUsecase interface {
	Sign(ctx context.Context, session *models.Session, request *requests.CreateESignature) (*responses.ESignature, error)
	FindByID(ctx context.Context, session *models.Session, signatureID string) (*responses.ESignature, error)
	ListBySwitchRequest(ctx context.Context, session *models.Session, switchRequestID string) ([]models.ESignature, error)
	Verify(ctx context.Context, session *models.Session, signatureID string) (*responses.ESignatureVerification, error)
}
