package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
)

type NotificationRepository interface {
	CreateMany(ctx context.Context, notifications []models.Notification) error
	FindAll(ctx context.Context, request *requests.FindAllNotifications) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, notificationID, recipientID string, at time.Time) (bool, error)
	MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, error)
}

type NotificationUsecase interface {
	Notify(ctx context.Context, request *requests.CreateNotification) error
	FindAll(ctx context.Context, session *models.Session, request *requests.FindAllNotifications) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, session *models.Session, notificationID string) error
	MarkAllRead(ctx context.Context, session *models.Session) (int64, error)
}

type AuditLogRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	FindAll(ctx context.Context, request *requests.FindAllAuditLogs) ([]models.AuditLog, int, error)
}

type AuditLogUsecase interface {
	// Record never fails the caller; errors are logged.
	Record(ctx context.Context, entry *models.AuditLog)
	FindAll(ctx context.Context, session *models.Session, request *requests.FindAllAuditLogs) ([]models.AuditLog, int, error)
	Export(ctx context.Context, session *models.Session, request *requests.FindAllAuditLogs) ([]byte, string, error)
}
