package conversations

import (
	"context"
	"database/sql"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"
)

type conversationPostgresRepository struct {
	DB *sql.DB
}

func NewConversationPostgresRepository(db *sql.DB) contracts.ConversationRepository {
	return &conversationPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func conversationFields(c *models.Conversation) []interface{} {
	return []interface{}{
		&c.ID,
		&c.SwitchRequestID,
		&c.PatientID,
		&c.AgencyID,
		&c.SwitchRequestStatus,
		&c.CreatedAt,
	}
}

func (repo *conversationPostgresRepository) findOne(ctx context.Context, query, arg string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := repo.DB.QueryRowContext(ctx, query, arg).Scan(conversationFields(&conversation)...)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &conversation, nil
}

func (repo *conversationPostgresRepository) FindByID(ctx context.Context, conversationID string) (*models.Conversation, error) {
	return repo.findOne(ctx, queries.GetConversationByID, conversationID)
}

func (repo *conversationPostgresRepository) FindBySwitchRequestID(ctx context.Context, switchRequestID string) (*models.Conversation, error) {
	return repo.findOne(ctx, queries.GetConversationBySwitchRequestID, switchRequestID)
}

func (repo *conversationPostgresRepository) FindAll(ctx context.Context, request *requests.FindAllConversations, viewerID string) ([]models.Conversation, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetAllConversations, request.PatientID, request.MemberProfileID, viewerID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	conversations := make([]models.Conversation, 0)
	for rows.Next() {
		var (
			conversation  models.Conversation
			lastMessageAt sql.NullTime
		)
		fields := append(conversationFields(&conversation), &conversation.UnreadCount, &lastMessageAt)
		if err := rows.Scan(fields...); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		if lastMessageAt.Valid {
			conversation.LastMessageAt = &lastMessageAt.Time
		}
		conversations = append(conversations, conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return conversations, nil
}

func (repo *conversationPostgresRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertMessage,
		message.ID,
		message.ConversationID,
		message.SenderID,
		message.Body,
		message.CreatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

// FindMessages returns newest first; Before is an exclusive cursor.
func (repo *conversationPostgresRepository) FindMessages(ctx context.Context, request *requests.FindMessages) ([]models.Message, error) {
	var before interface{}
	if request.Before != nil {
		before = *request.Before
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetMessages, request.ConversationID, before, request.Limit)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		messages = append(messages, *message)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return messages, nil
}

func (repo *conversationPostgresRepository) MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error) {
	result, err := repo.DB.ExecContext(ctx, queries.MarkMessagesRead, conversationID, readerID, at)
	if err != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected, nil
}

func scanMessage(row rowScanner) (*models.Message, error) {
	var (
		message models.Message
		readAt  sql.NullTime
	)
	err := row.Scan(
		&message.ID,
		&message.ConversationID,
		&message.SenderID,
		&message.Body,
		&message.CreatedAt,
		&readAt,
	)
	if err != nil {
		return nil, err
	}
	if readAt.Valid {
		message.ReadAt = &readAt.Time
	}
	return &message, nil
}
