package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"carelink-service/internal/app/config"
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

type documentUsecase struct {
	DocumentRepository     contracts.DocumentRepository
	AgencyMemberRepository contracts.AgencyMemberRepository
	SwitchRequestUsecase   contracts.SwitchRequestUsecase
	StorageService         contracts.StorageService
	NotificationUsecase    contracts.NotificationUsecase
	AuditLogUsecase        contracts.AuditLogUsecase
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewDocumentUsecase(
	documentRepository contracts.DocumentRepository,
	agencyMemberRepository contracts.AgencyMemberRepository,
	switchRequestUsecase contracts.SwitchRequestUsecase,
	storageService contracts.StorageService,
	notificationUsecase contracts.NotificationUsecase,
	auditLogUsecase contracts.AuditLogUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DocumentUsecase {
	return &documentUsecase{
		DocumentRepository:     documentRepository,
		AgencyMemberRepository: agencyMemberRepository,
		SwitchRequestUsecase:   switchRequestUsecase,
		StorageService:         storageService,
		NotificationUsecase:    notificationUsecase,
		AuditLogUsecase:        auditLogUsecase,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

func (uc *documentUsecase) Upload(ctx context.Context, session *models.Session, request *requests.UploadDocument) (*responses.Document, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("documentUsecase.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSwitchRequestIDKey, request.SwitchRequestID),
		zap.Int64("size", request.Size),
	)

	sr, err := uc.SwitchRequestUsecase.LoadVisible(ctx, session, request.SwitchRequestID)
	if err != nil {
		return nil, err
	}
	if sr.IsTerminal() {
		return nil, exceptions.ErrSwitchRequestClosed(nil, sr.ID, sr.Status)
	}

	ext, ok := utils.ExtensionForContentType(request.ContentType)
	if !ok {
		return nil, exceptions.ErrUnsupportedFileType(nil, request.ContentType)
	}

	maxSizeInMB := uc.InternalConfig.App.DocumentMaxUploadSizeInMB
	maxSize := maxSizeInMB * 1024 * 1024
	if request.Size > maxSize {
		return nil, exceptions.ErrFileTooLarge(nil, request.Size, maxSizeInMB)
	}

	objectName := utils.GenerateDocumentObjectName(sr.ID, ext)
	hashingReader := utils.NewHashingReader(io.LimitReader(request.File, maxSize+1))

	err = uc.StorageService.PutObject(ctx, objectName, hashingReader, request.Size, request.ContentType)
	if err != nil {
		uc.Log.Error("documentUsecase.Upload error storing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStorageKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	if hashingReader.Size() > maxSize {
		uc.removeObject(ctx, objectName)
		return nil, exceptions.ErrFileTooLarge(nil, hashingReader.Size(), maxSizeInMB)
	}

	document := &models.Document{
		ID:              uuid.NewString(),
		SwitchRequestID: sr.ID,
		UploadedBy:      session.ProfileID,
		DocumentType:    request.DocumentType,
		FileName:        request.FileName,
		ContentType:     request.ContentType,
		SizeBytes:       hashingReader.Size(),
		StorageKey:      objectName,
		Checksum:        hashingReader.Checksum(),
		CreatedAt:       time.Now().UTC(),
	}

	err = uc.DocumentRepository.Create(ctx, document)
	if err != nil {
		uc.Log.Error("documentUsecase.Upload error saving document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.removeObject(ctx, objectName)
		return nil, err
	}

	uc.notifyCounterparty(ctx, session, sr, document)

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    session.ProfileID,
		ActorRole:  session.Role,
		Action:     constvars.AuditActionUpload,
		EntityType: constvars.AuditEntityDocument,
		EntityID:   document.ID,
		Metadata: map[string]interface{}{
			"switch_request_id": sr.ID,
			"checksum":          document.Checksum,
			"size_bytes":        document.SizeBytes,
		},
	})

	uc.Log.Info("documentUsecase.Upload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, document.ID),
	)
	return uc.withDownloadURL(ctx, document)
}

func (uc *documentUsecase) ListBySwitchRequest(ctx context.Context, session *models.Session, switchRequestID string) ([]models.Document, error) {
	if _, err := uc.SwitchRequestUsecase.LoadVisible(ctx, session, switchRequestID); err != nil {
		return nil, err
	}
	return uc.DocumentRepository.FindAllBySwitchRequestID(ctx, switchRequestID)
}

func (uc *documentUsecase) FindByID(ctx context.Context, session *models.Session, documentID string) (*responses.Document, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("documentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, documentID),
	)

	document, err := uc.loadVisible(ctx, session, documentID)
	if err != nil {
		return nil, err
	}
	return uc.withDownloadURL(ctx, document)
}

func (uc *documentUsecase) Delete(ctx context.Context, session *models.Session, documentID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("documentUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, documentID),
	)

	document, err := uc.loadVisible(ctx, session, documentID)
	if err != nil {
		return err
	}
	if document.UploadedBy != session.ProfileID {
		return exceptions.ErrRowAccessDenied(errors.New("only the uploader may delete"), session.ProfileID, constvars.AuditEntityDocument, documentID)
	}

	deleted, err := uc.DocumentRepository.SoftDeleteIfUnsigned(ctx, documentID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrDocumentAlreadySigned(nil, documentID)
	}

	uc.removeObject(ctx, document.StorageKey)

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    session.ProfileID,
		ActorRole:  session.Role,
		Action:     constvars.AuditActionDelete,
		EntityType: constvars.AuditEntityDocument,
		EntityID:   documentID,
	})

	uc.Log.Info("documentUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, documentID),
	)
	return nil
}

func (uc *documentUsecase) loadVisible(ctx context.Context, session *models.Session, documentID string) (*models.Document, error) {
	document, err := uc.DocumentRepository.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityDocument, documentID)
	}
	if _, err := uc.SwitchRequestUsecase.LoadVisible(ctx, session, document.SwitchRequestID); err != nil {
		return nil, err
	}
	return document, nil
}

func (uc *documentUsecase) withDownloadURL(ctx context.Context, document *models.Document) (*responses.Document, error) {
	expiry := time.Duration(uc.InternalConfig.App.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	downloadURL, err := uc.StorageService.GetObjectUrlWithExpiryTime(ctx, document.StorageKey, expiry)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().UTC().Add(expiry)
	return &responses.Document{
		Document:          document,
		DownloadURL:       downloadURL,
		DownloadExpiresAt: &expiresAt,
	}, nil
}

// removeObject cleans up storage after the row is gone or was never written;
// a failure leaves an orphaned object, which is logged and not surfaced.
func (uc *documentUsecase) removeObject(ctx context.Context, objectName string) {
	if err := uc.StorageService.RemoveObject(ctx, objectName); err != nil {
		uc.Log.Error("documentUsecase.removeObject error removing object",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingStorageKey, objectName),
			zap.Error(err),
		)
	}
}

func (uc *documentUsecase) notifyCounterparty(ctx context.Context, session *models.Session, sr *models.SwitchRequest, document *models.Document) {
	var recipientIDs []string
	if session.ProfileID == sr.PatientID {
		memberIDs, err := uc.AgencyMemberRepository.FindProfileIDsByAgencyID(ctx, sr.NewAgencyID)
		if err != nil {
			uc.Log.Error("documentUsecase.notifyCounterparty error fetching members",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.Error(err),
			)
			return
		}
		recipientIDs = memberIDs
	} else {
		recipientIDs = []string{sr.PatientID}
	}
	if len(recipientIDs) == 0 {
		return
	}

	err := uc.NotificationUsecase.Notify(ctx, &requests.CreateNotification{
		RecipientIDs: recipientIDs,
		Type:         constvars.NotificationTypeDocumentUploaded,
		Title:        "New document",
		Body:         fmt.Sprintf("%s uploaded %s.", session.FullName, document.FileName),
		Link:         fmt.Sprintf("%s/switch-requests/%s", uc.InternalConfig.App.FrontendDomain, sr.ID),
	})
	if err != nil {
		uc.Log.Error("documentUsecase.notifyCounterparty error sending notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}
