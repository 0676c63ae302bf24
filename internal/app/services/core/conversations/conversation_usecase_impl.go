package conversations

import (
	"context"
	"fmt"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/app/services/shared/metrics"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const entityConversation = "conversation"

type conversationUsecase struct {
	ConversationRepository contracts.ConversationRepository
	AgencyMemberRepository contracts.AgencyMemberRepository
	AccessGuard            contracts.AccessGuard
	ResourceLimiter        contracts.ResourceLimiter
	RealtimeHub            contracts.RealtimeHub
	NotificationUsecase    contracts.NotificationUsecase
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewConversationUsecase(
	conversationRepository contracts.ConversationRepository,
	agencyMemberRepository contracts.AgencyMemberRepository,
	accessGuard contracts.AccessGuard,
	resourceLimiter contracts.ResourceLimiter,
	realtimeHub contracts.RealtimeHub,
	notificationUsecase contracts.NotificationUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConversationUsecase {
	return &conversationUsecase{
		ConversationRepository: conversationRepository,
		AgencyMemberRepository: agencyMemberRepository,
		AccessGuard:            accessGuard,
		ResourceLimiter:        resourceLimiter,
		RealtimeHub:            realtimeHub,
		NotificationUsecase:    notificationUsecase,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

func (uc *conversationUsecase) ListConversations(ctx context.Context, session *models.Session) ([]models.Conversation, error) {
	request := &requests.FindAllConversations{}
	switch {
	case session.IsPatient():
		request.PatientID = session.ProfileID
	case session.IsAgency():
		request.MemberProfileID = session.ProfileID
	}
	return uc.ConversationRepository.FindAll(ctx, request, session.ProfileID)
}

func (uc *conversationUsecase) ListMessages(ctx context.Context, session *models.Session, request *requests.FindMessages) ([]models.Message, error) {
	if _, err := uc.Authorize(ctx, session, request.ConversationID); err != nil {
		return nil, err
	}

	if request.Limit <= 0 {
		request.Limit = constvars.DefaultMessagePageSize
	}
	if request.Limit > constvars.MaxMessagePageSize {
		request.Limit = constvars.MaxMessagePageSize
	}
	return uc.ConversationRepository.FindMessages(ctx, request)
}

func (uc *conversationUsecase) SendMessage(ctx context.Context, session *models.Session, conversationID string, request *requests.SendMessage) (*models.Message, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("conversationUsecase.SendMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConversationIDKey, conversationID),
		zap.String(constvars.LoggingProfileIDKey, session.ProfileID),
	)

	conversation, err := uc.requireParticipant(ctx, session, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.SwitchRequestStatus == constvars.SwitchRequestStatusCancelled {
		return nil, exceptions.ErrConversationClosed(nil, conversationID)
	}

	limit, err := uc.ResourceLimiter.ApplyResourceLimiter(ctx, &contracts.ApplyResourceLimiterInput{
		ResourceName:      session.ProfileID,
		LimiterGroupName:  constvars.RedisMessageLimiterGroup,
		WindowDurationSec: uc.InternalConfig.Messaging.WindowInSeconds,
		MaxQuota:          uc.InternalConfig.Messaging.MaxMessagesPerWindow,
	})
	if err != nil {
		return nil, err
	}
	if !limit.Allowed {
		uc.Log.Warn("conversationUsecase.SendMessage rate limited",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProfileIDKey, session.ProfileID),
			zap.Int("retry_after", limit.RetryAfterSecs),
		)
		return nil, exceptions.ErrTooManyRequests(nil, constvars.RedisMessageLimiterGroup)
	}

	message := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       session.ProfileID,
		Body:           request.Body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.ConversationRepository.CreateMessage(ctx, message); err != nil {
		uc.Log.Error("conversationUsecase.SendMessage error saving message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.RecordMessageSent()

	uc.publish(ctx, &models.RealtimeEvent{
		Type:           constvars.RealtimeEventMessage,
		ConversationID: conversationID,
		SenderID:       session.ProfileID,
		Message:        message,
		SentAt:         message.CreatedAt,
	})
	uc.notifyOtherParty(ctx, session, conversation)

	uc.Log.Info("conversationUsecase.SendMessage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMessageIDKey, message.ID),
	)
	return message, nil
}

func (uc *conversationUsecase) MarkRead(ctx context.Context, session *models.Session, conversationID string) (int64, error) {
	if _, err := uc.requireParticipant(ctx, session, conversationID); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	updated, err := uc.ConversationRepository.MarkRead(ctx, conversationID, session.ProfileID, now)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		uc.publish(ctx, &models.RealtimeEvent{
			Type:           constvars.RealtimeEventRead,
			ConversationID: conversationID,
			SenderID:       session.ProfileID,
			SentAt:         now,
		})
	}
	return updated, nil
}

// Authorize admits participants and platform admins.
func (uc *conversationUsecase) Authorize(ctx context.Context, session *models.Session, conversationID string) (*models.Conversation, error) {
	conversation, err := uc.ConversationRepository.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, exceptions.ErrNotFound(nil, entityConversation, conversationID)
	}
	if session.IsAdmin() {
		return conversation, nil
	}

	ok, err := uc.AccessGuard.IsConversationParticipant(ctx, session, conversation)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, exceptions.ErrRowAccessDenied(nil, session.ProfileID, entityConversation, conversationID)
	}
	return conversation, nil
}

func (uc *conversationUsecase) requireParticipant(ctx context.Context, session *models.Session, conversationID string) (*models.Conversation, error) {
	conversation, err := uc.Authorize(ctx, session, conversationID)
	if err != nil {
		return nil, err
	}
	if session.IsAdmin() {
		return nil, exceptions.ErrRowAccessDenied(nil, session.ProfileID, entityConversation, conversationID)
	}
	return conversation, nil
}

func (uc *conversationUsecase) publish(ctx context.Context, event *models.RealtimeEvent) {
	if err := uc.RealtimeHub.Publish(ctx, event); err != nil {
		uc.Log.Error("conversationUsecase.publish error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingConversationIDKey, event.ConversationID),
			zap.Error(err),
		)
	}
}

func (uc *conversationUsecase) notifyOtherParty(ctx context.Context, session *models.Session, conversation *models.Conversation) {
	recipientIDs := []string{conversation.PatientID}
	if session.ProfileID == conversation.PatientID {
		memberIDs, err := uc.AgencyMemberRepository.FindProfileIDsByAgencyID(ctx, conversation.AgencyID)
		if err != nil {
			uc.Log.Error("conversationUsecase.notifyOtherParty error fetching members",
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
		Type:         constvars.NotificationTypeNewMessage,
		Title:        "New message",
		Body:         fmt.Sprintf("%s sent you a message.", session.FullName),
		Link:         fmt.Sprintf("%s/switch-requests/%s", uc.InternalConfig.App.FrontendDomain, conversation.SwitchRequestID),
	})
	if err != nil {
		uc.Log.Error("conversationUsecase.notifyOtherParty error sending notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}
