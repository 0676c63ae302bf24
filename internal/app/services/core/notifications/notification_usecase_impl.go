package notifications

import (
	"context"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const entityNotification = "notification"

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	ProfileRepository      contracts.ProfileRepository
	MailerService          contracts.MailerService
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	profileRepository contracts.ProfileRepository,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	return &notificationUsecase{
		NotificationRepository: notificationRepository,
		ProfileRepository:      profileRepository,
		MailerService:          mailerService,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

// Notify stores one in-app row per distinct recipient and then queues an
// email for each of them. Email failures are logged and do not fail the call.
func (uc *notificationUsecase) Notify(ctx context.Context, request *requests.CreateNotification) error {
	requestID := utils.GetRequestID(ctx)

	recipientIDs := uniqueIDs(request.RecipientIDs)
	if len(recipientIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	notifications := make([]models.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		notifications = append(notifications, models.Notification{
			ID:          uuid.NewString(),
			RecipientID: recipientID,
			Type:        request.Type,
			Title:       request.Title,
			Body:        request.Body,
			Link:        request.Link,
			CreatedAt:   now,
		})
	}

	if err := uc.NotificationRepository.CreateMany(ctx, notifications); err != nil {
		uc.Log.Error("notificationUsecase.Notify error saving notifications",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("notificationUsecase.Notify stored notifications",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("type", request.Type),
		zap.Int(constvars.LoggingCountKey, len(notifications)),
	)

	uc.sendEmails(ctx, recipientIDs, request)
	return nil
}

func (uc *notificationUsecase) sendEmails(ctx context.Context, recipientIDs []string, request *requests.CreateNotification) {
	requestID := utils.GetRequestID(ctx)

	profiles, err := uc.ProfileRepository.FindByIDs(ctx, recipientIDs)
	if err != nil {
		uc.Log.Error("notificationUsecase.sendEmails error fetching recipients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	for _, profile := range profiles {
		if profile.Email == "" {
			continue
		}
		payload := utils.BuildNotificationEmailPayload(
			uc.InternalConfig.Mailer.EmailSender,
			profile.Email,
			profile.FullName,
			request.Title,
			request.Body,
			request.Link,
		)
		if err := uc.MailerService.SendEmail(ctx, payload); err != nil {
			uc.Log.Error("notificationUsecase.sendEmails error queueing email",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProfileIDKey, profile.ID),
				zap.Error(err),
			)
		}
	}
}

func (uc *notificationUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindAllNotifications) ([]models.Notification, int, error) {
	request.RecipientID = session.ProfileID
	return uc.NotificationRepository.FindAll(ctx, request)
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	updated, err := uc.NotificationRepository.MarkRead(ctx, notificationID, session.ProfileID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !updated {
		return exceptions.ErrNotFound(nil, entityNotification, notificationID)
	}
	return nil
}

func (uc *notificationUsecase) MarkAllRead(ctx context.Context, session *models.Session) (int64, error) {
	return uc.NotificationRepository.MarkAllRead(ctx, session.ProfileID, time.Now().UTC())
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
