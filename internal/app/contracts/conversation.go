package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
)

type ConversationRepository interface {
	FindByID(ctx context.Context, conversationID string) (*models.Conversation, error)
	FindBySwitchRequestID(ctx context.Context, switchRequestID string) (*models.Conversation, error)
	FindAll(ctx context.Context, request *requests.FindAllConversations, viewerID string) ([]models.Conversation, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	FindMessages(ctx context.Context, request *requests.FindMessages) ([]models.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error)
}

type ConversationUsecase interface {
	ListConversations(ctx context.Context, session *models.Session) ([]models.Conversation, error)
	ListMessages(ctx context.Context, session *models.Session, request *requests.FindMessages) ([]models.Message, error)
	SendMessage(ctx context.Context, session *models.Session, conversationID string, request *requests.SendMessage) (*models.Message, error)
	MarkRead(ctx context.Context, session *models.Session, conversationID string) (int64, error)
	// Authorize loads the conversation if the caller may read it.
	Authorize(ctx context.Context, session *models.Session, conversationID string) (*models.Conversation, error)
}
