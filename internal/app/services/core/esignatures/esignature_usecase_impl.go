package esignatures

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
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

type eSignatureUsecase struct {
	ESignatureRepository   contracts.ESignatureRepository
	DocumentRepository     contracts.DocumentRepository
	AgencyMemberRepository contracts.AgencyMemberRepository
	SwitchRequestUsecase   contracts.SwitchRequestUsecase
	StorageService         contracts.StorageService
	NotificationUsecase    contracts.NotificationUsecase
	AuditLogUsecase        contracts.AuditLogUsecase
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewESignatureUsecase(
	eSignatureRepository contracts.ESignatureRepository,
	documentRepository contracts.DocumentRepository,
	agencyMemberRepository contracts.AgencyMemberRepository,
	switchRequestUsecase contracts.SwitchRequestUsecase,
	storageService contracts.StorageService,
	notificationUsecase contracts.NotificationUsecase,
	auditLogUsecase contracts.AuditLogUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ESignatureUsecase {
	return &eSignatureUsecase{
		ESignatureRepository:   eSignatureRepository,
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

func (uc *eSignatureUsecase) Sign(ctx context.Context, session *models.Session, request *requests.CreateESignature) (*responses.ESignature, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("eSignatureUsecase.Sign called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, session.ProfileID),
		zap.String(constvars.LoggingDocumentIDKey, request.DocumentID),
		zap.String(constvars.LoggingSwitchRequestIDKey, request.SwitchRequestID),
	)

	if !request.Consent {
		return nil, exceptions.ErrConsentRequired(nil)
	}

	var document *models.Document
	switchRequestID := request.SwitchRequestID
	if request.DocumentID != "" {
		var err error
		document, err = uc.DocumentRepository.FindByID(ctx, request.DocumentID)
		if err != nil {
			return nil, err
		}
		if document == nil {
			return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityDocument, request.DocumentID)
		}
		if switchRequestID != "" && switchRequestID != document.SwitchRequestID {
			return nil, exceptions.ErrInputValidation(errors.New("document does not belong to the switch request"))
		}
		switchRequestID = document.SwitchRequestID
	}

	sr, err := uc.SwitchRequestUsecase.LoadVisible(ctx, session, switchRequestID)
	if err != nil {
		return nil, err
	}
	if sr.IsTerminal() {
		return nil, exceptions.ErrSwitchRequestClosed(nil, sr.ID, sr.Status)
	}

	exists, err := uc.ESignatureRepository.ExistsForSigner(ctx, session.ProfileID, request.DocumentID, sr.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		target := sr.ID
		if request.DocumentID != "" {
			target = request.DocumentID
		}
		return nil, exceptions.ErrAlreadySigned(nil, session.ProfileID, target)
	}

	signature := &models.ESignature{
		ID:              uuid.NewString(),
		SignerID:        session.ProfileID,
		DocumentID:      request.DocumentID,
		SwitchRequestID: sr.ID,
		SignatureType:   request.SignatureType,
		IPAddress:       request.IPAddress,
		UserAgent:       request.UserAgent,
		// Postgres keeps microseconds; the checksum must survive a round trip.
		SignedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if document != nil {
		signature.DocumentChecksum = document.Checksum
	}

	switch request.SignatureType {
	case constvars.SignatureTypeTyped:
		if request.TypedName == "" {
			return nil, exceptions.ErrInvalidSignature(errors.New("typed name missing"))
		}
		if !utils.IsValidSignatureName(request.TypedName) {
			return nil, exceptions.ErrInvalidSignature(errors.New("typed name contains reserved characters"))
		}
		signature.TypedName = request.TypedName
	case constvars.SignatureTypeDrawn:
		image, err := decodeDrawnImage(request.DrawnImage)
		if err != nil {
			return nil, exceptions.ErrInvalidSignature(err)
		}
		signature.DrawnImageKey = utils.GenerateSignatureObjectName(sr.ID, signature.ID)
		signature.DrawnImageChecksum = utils.SHA256Hex(image)

		err = uc.StorageService.PutObject(ctx, signature.DrawnImageKey, bytes.NewReader(image), int64(len(image)), constvars.MIMEImagePNG)
		if err != nil {
			uc.Log.Error("eSignatureUsecase.Sign error storing drawn image",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
	default:
		return nil, exceptions.ErrInvalidSignature(fmt.Errorf("unknown signature type %q", request.SignatureType))
	}

	signature.Checksum = utils.ComputeSignatureChecksum(signature)

	err = uc.ESignatureRepository.Create(ctx, signature)
	if err != nil {
		uc.Log.Error("eSignatureUsecase.Sign error saving signature",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if signature.DrawnImageKey != "" {
			if removeErr := uc.StorageService.RemoveObject(ctx, signature.DrawnImageKey); removeErr != nil {
				uc.Log.Error("eSignatureUsecase.Sign error removing drawn image",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(removeErr),
				)
			}
		}
		return nil, err
	}

	uc.notifyCounterparty(ctx, session, sr)

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    session.ProfileID,
		ActorRole:  session.Role,
		Action:     constvars.AuditActionSign,
		EntityType: constvars.AuditEntityESignature,
		EntityID:   signature.ID,
		Metadata: map[string]interface{}{
			"switch_request_id": sr.ID,
			"document_id":       signature.DocumentID,
			"checksum":          signature.Checksum,
		},
	})

	uc.Log.Info("eSignatureUsecase.Sign succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSignatureIDKey, signature.ID),
	)
	return uc.toResponse(ctx, signature)
}

func (uc *eSignatureUsecase) FindByID(ctx context.Context, session *models.Session, signatureID string) (*responses.ESignature, error) {
	signature, err := uc.loadVisible(ctx, session, signatureID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, signature)
}

func (uc *eSignatureUsecase) ListBySwitchRequest(ctx context.Context, session *models.Session, switchRequestID string) ([]models.ESignature, error) {
	if _, err := uc.SwitchRequestUsecase.LoadVisible(ctx, session, switchRequestID); err != nil {
		return nil, err
	}
	return uc.ESignatureRepository.FindAllBySwitchRequestID(ctx, switchRequestID)
}

// Verify recomputes the signature checksum from the stored fields and checks
// that the signed document still carries the checksum it had when signed.
func (uc *eSignatureUsecase) Verify(ctx context.Context, session *models.Session, signatureID string) (*responses.ESignatureVerification, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("eSignatureUsecase.Verify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSignatureIDKey, signatureID),
	)

	signature, err := uc.loadVisible(ctx, session, signatureID)
	if err != nil {
		return nil, err
	}

	recomputed := utils.ComputeSignatureChecksum(signature)
	result := &responses.ESignatureVerification{
		SignatureID:        signature.ID,
		StoredChecksum:     signature.Checksum,
		RecomputedChecksum: recomputed,
		ChecksumMatches:    recomputed == signature.Checksum,
		DocumentUnchanged:  true,
	}

	if signature.DocumentID != "" {
		document, err := uc.DocumentRepository.FindByID(ctx, signature.DocumentID)
		if err != nil {
			return nil, err
		}
		if document == nil {
			result.DocumentUnchanged = false
		} else {
			result.CurrentDocumentHash = document.Checksum
			result.DocumentUnchanged = document.Checksum == signature.DocumentChecksum
		}
	}
	result.Valid = result.ChecksumMatches && result.DocumentUnchanged

	uc.Log.Info("eSignatureUsecase.Verify finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSignatureIDKey, signatureID),
		zap.Bool("valid", result.Valid),
	)
	return result, nil
}

func (uc *eSignatureUsecase) loadVisible(ctx context.Context, session *models.Session, signatureID string) (*models.ESignature, error) {
	signature, err := uc.ESignatureRepository.FindByID(ctx, signatureID)
	if err != nil {
		return nil, err
	}
	if signature == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityESignature, signatureID)
	}
	if _, err := uc.SwitchRequestUsecase.LoadVisible(ctx, session, signature.SwitchRequestID); err != nil {
		return nil, err
	}
	return signature, nil
}

func (uc *eSignatureUsecase) toResponse(ctx context.Context, signature *models.ESignature) (*responses.ESignature, error) {
	response := &responses.ESignature{ESignature: signature}
	if signature.DrawnImageKey == "" {
		return response, nil
	}
	expiry := time.Duration(uc.InternalConfig.App.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	imageURL, err := uc.StorageService.GetObjectUrlWithExpiryTime(ctx, signature.DrawnImageKey, expiry)
	if err != nil {
		return nil, err
	}
	response.DrawnImageURL = imageURL
	return response, nil
}

func (uc *eSignatureUsecase) notifyCounterparty(ctx context.Context, session *models.Session, sr *models.SwitchRequest) {
	recipientIDs := []string{sr.PatientID}
	if session.ProfileID == sr.PatientID {
		memberIDs, err := uc.AgencyMemberRepository.FindProfileIDsByAgencyID(ctx, sr.NewAgencyID)
		if err != nil {
			uc.Log.Error("eSignatureUsecase.notifyCounterparty error fetching members",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.Error(err),
			)
			return
		}
		recipientIDs = memberIDs
	}
	if len(recipientIDs) == 0 {
		return
	}

	err := uc.NotificationUsecase.Notify(ctx, &requests.CreateNotification{
		RecipientIDs: recipientIDs,
		Type:         constvars.NotificationTypeSignatureCaptured,
		Title:        "New signature",
		Body:         fmt.Sprintf("%s signed on the switch request.", session.FullName),
		Link:         fmt.Sprintf("%s/switch-requests/%s", uc.InternalConfig.App.FrontendDomain, sr.ID),
	})
	if err != nil {
		uc.Log.Error("eSignatureUsecase.notifyCounterparty error sending notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

// decodeDrawnImage accepts raw base64 or a PNG data URL and returns the PNG bytes.
func decodeDrawnImage(encoded string) ([]byte, error) {
	encoded = strings.TrimPrefix(encoded, constvars.DrawnSignatureDataPrefix)
	if encoded == "" {
		return nil, errors.New("drawn image missing")
	}
	if base64.StdEncoding.DecodedLen(len(encoded)) > constvars.MaxDrawnSignatureBytes+2 {
		return nil, errors.New("drawn image too large")
	}

	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(image) > constvars.MaxDrawnSignatureBytes {
		return nil, errors.New("drawn image too large")
	}
	if http.DetectContentType(image) != constvars.MIMEImagePNG {
		return nil, errors.New("drawn image is not a PNG")
	}
	return image, nil
}
