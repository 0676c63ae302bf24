package notifications

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

type notificationPostgresRepository struct {
	DB *sql.DB
}

func NewNotificationPostgresRepository(db *sql.DB) contracts.NotificationRepository {
	return &notificationPostgresRepository{
		DB: db,
	}
}

// CreateMany inserts every row or none.
func (repo *notificationPostgresRepository) CreateMany(ctx context.Context, notifications []models.Notification) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	for _, notification := range notifications {
		_, err := tx.ExecContext(ctx, queries.InsertNotification,
			notification.ID,
			notification.RecipientID,
			notification.Type,
			notification.Title,
			notification.Body,
			notification.Link,
			notification.CreatedAt,
		)
		if err != nil {
			return exceptions.ErrPostgresDBInsertData(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTransaction(err)
	}
	return nil
}

func (repo *notificationPostgresRepository) FindAll(ctx context.Context, request *requests.FindAllNotifications) ([]models.Notification, int, error) {
	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountNotifications, request.RecipientID, request.UnreadOnly).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetNotifications, request.RecipientID, request.UnreadOnly, request.PageSize, request.Offset())
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var (
			notification models.Notification
			readAt       sql.NullTime
		)
		err := rows.Scan(
			&notification.ID,
			&notification.RecipientID,
			&notification.Type,
			&notification.Title,
			&notification.Body,
			&notification.Link,
			&readAt,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		if readAt.Valid {
			notification.ReadAt = &readAt.Time
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return notifications, total, nil
}

func (repo *notificationPostgresRepository) MarkRead(ctx context.Context, notificationID, recipientID string, at time.Time) (bool, error) {
	result, err := repo.DB.ExecContext(ctx, queries.MarkNotificationRead, notificationID, recipientID, at)
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected > 0, nil
}

func (repo *notificationPostgresRepository) MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, error) {
	result, err := repo.DB.ExecContext(ctx, queries.MarkAllNotificationsRead, recipientID, at)
	if err != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected, nil
}
