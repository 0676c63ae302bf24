package mocks

import (
	"context"
	"io"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/mock"
)

type SessionService struct{ mock.Mock }

func (m *SessionService) CreateSession(ctx context.Context, profile *models.Profile) (*models.Session, string, error) {
	args := m.Called(ctx, profile)
	session, _ := args.Get(0).(*models.Session)
	return session, args.String(1), args.Error(2)
}

func (m *SessionService) GetSessionFromToken(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type StorageService struct{ mock.Mock }

// PutObject drains reader so callers that hash while streaming see the full content.
func (m *StorageService) PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, _ = io.Copy(io.Discard, reader)
	return m.Called(ctx, objectName, size, contentType).Error(0)
}

func (m *StorageService) GetObjectUrlWithExpiryTime(ctx context.Context, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

func (m *StorageService) RemoveObject(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

type MailerService struct{ mock.Mock }

func (m *MailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	return m.Called(ctx, request).Error(0)
}

type ResourceLimiter struct{ mock.Mock }

func (m *ResourceLimiter) ApplyResourceLimiter(ctx context.Context, in *contracts.ApplyResourceLimiterInput) (*contracts.ApplyResourceLimiterOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*contracts.ApplyResourceLimiterOutput)
	return out, args.Error(1)
}

type LicenseRegistryClient struct{ mock.Mock }

func (m *LicenseRegistryClient) LookupLicense(ctx context.Context, licenseNumber, state string) (*models.LicenseRecord, error) {
	args := m.Called(ctx, licenseNumber, state)
	record, _ := args.Get(0).(*models.LicenseRecord)
	return record, args.Error(1)
}

type RealtimeHub struct{ mock.Mock }

func (m *RealtimeHub) Publish(ctx context.Context, event *models.RealtimeEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *RealtimeHub) Attach(ctx context.Context, conn *websocket.Conn, conversationID, profileID string) {
	m.Called(ctx, conn, conversationID, profileID)
}

func (m *RealtimeHub) Close() {
	m.Called()
}

type LockerService struct{ mock.Mock }

func (m *LockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *LockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

type AccessGuard struct{ mock.Mock }

func (m *AccessGuard) Membership(ctx context.Context, agencyID, profileID string) (*models.AgencyMember, error) {
	args := m.Called(ctx, agencyID, profileID)
	member, _ := args.Get(0).(*models.AgencyMember)
	return member, args.Error(1)
}

func (m *AccessGuard) CanViewSwitchRequest(ctx context.Context, session *models.Session, switchRequest *models.SwitchRequest) (bool, error) {
	args := m.Called(ctx, session, switchRequest)
	return args.Bool(0), args.Error(1)
}

func (m *AccessGuard) IsConversationParticipant(ctx context.Context, session *models.Session, conversation *models.Conversation) (bool, error) {
	args := m.Called(ctx, session, conversation)
	return args.Bool(0), args.Error(1)
}

type NotificationUsecase struct{ mock.Mock }

func (m *NotificationUsecase) Notify(ctx context.Context, request *requests.CreateNotification) error {
	return m.Called(ctx, request).Error(0)
}

func (m *NotificationUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindAllNotifications) ([]models.Notification, int, error) {
	args := m.Called(ctx, session, request)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Int(1), args.Error(2)
}

func (m *NotificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	return m.Called(ctx, session, notificationID).Error(0)
}

func (m *NotificationUsecase) MarkAllRead(ctx context.Context, session *models.Session) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

type AuditLogUsecase struct{ mock.Mock }

func (m *AuditLogUsecase) Record(ctx context.Context, entry *models.AuditLog) {
	m.Called(ctx, entry)
}

func (m *AuditLogUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindAllAuditLogs) ([]models.AuditLog, int, error) {
	args := m.Called(ctx, session, request)
	entries, _ := args.Get(0).([]models.AuditLog)
	return entries, args.Int(1), args.Error(2)
}

func (m *AuditLogUsecase) Export(ctx context.Context, session *models.Session, request *requests.FindAllAuditLogs) ([]byte, string, error) {
	args := m.Called(ctx, session, request)
	content, _ := args.Get(0).([]byte)
	return content, args.String(1), args.Error(2)
}

type SwitchRequestUsecase struct{ mock.Mock }

func (m *SwitchRequestUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateSwitchRequest) (*responses.SwitchRequestDetail, error) {
	args := m.Called(ctx, session, request)
	detail, _ := args.Get(0).(*responses.SwitchRequestDetail)
	return detail, args.Error(1)
}

func (m *SwitchRequestUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindAllSwitchRequests) ([]models.SwitchRequest, int, error) {
	args := m.Called(ctx, session, request)
	switchRequests, _ := args.Get(0).([]models.SwitchRequest)
	return switchRequests, args.Int(1), args.Error(2)
}

func (m *SwitchRequestUsecase) FindByID(ctx context.Context, session *models.Session, switchRequestID string) (*responses.SwitchRequestDetail, error) {
	args := m.Called(ctx, session, switchRequestID)
	detail, _ := args.Get(0).(*responses.SwitchRequestDetail)
	return detail, args.Error(1)
}

func (m *SwitchRequestUsecase) UpdateStatus(ctx context.Context, session *models.Session, switchRequestID string, request *requests.UpdateSwitchRequestStatus) (*responses.SwitchRequestDetail, error) {
	args := m.Called(ctx, session, switchRequestID, request)
	detail, _ := args.Get(0).(*responses.SwitchRequestDetail)
	return detail, args.Error(1)
}

func (m *SwitchRequestUsecase) History(ctx context.Context, session *models.Session, switchRequestID string) ([]models.SwitchRequestStatusHistory, error) {
	args := m.Called(ctx, session, switchRequestID)
	history, _ := args.Get(0).([]models.SwitchRequestStatusHistory)
	return history, args.Error(1)
}

func (m *SwitchRequestUsecase) LoadVisible(ctx context.Context, session *models.Session, switchRequestID string) (*models.SwitchRequest, error) {
	args := m.Called(ctx, session, switchRequestID)
	switchRequest, _ := args.Get(0).(*models.SwitchRequest)
	return switchRequest, args.Error(1)
}
