// Package mocks holds testify mocks of the contracts for usecase tests.
package mocks

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/mock"
)

type ProfileRepository struct{ mock.Mock }

func (m *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) FindByID(ctx context.Context, profileID string) (*models.Profile, error) {
	args := m.Called(ctx, profileID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *ProfileRepository) FindByIDs(ctx context.Context, profileIDs []string) ([]models.Profile, error) {
	args := m.Called(ctx, profileIDs)
	profiles, _ := args.Get(0).([]models.Profile)
	return profiles, args.Error(1)
}

func (m *ProfileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *ProfileRepository) FindAll(ctx context.Context, request *requests.FindAllProfiles) ([]models.Profile, int, error) {
	args := m.Called(ctx, request)
	profiles, _ := args.Get(0).([]models.Profile)
	return profiles, args.Int(1), args.Error(2)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

type AgencyRepository struct{ mock.Mock }

func (m *AgencyRepository) CreateWithOwner(ctx context.Context, agency *models.Agency, owner *models.AgencyMember) error {
	return m.Called(ctx, agency, owner).Error(0)
}

func (m *AgencyRepository) FindByID(ctx context.Context, agencyID string) (*models.Agency, error) {
	args := m.Called(ctx, agencyID)
	agency, _ := args.Get(0).(*models.Agency)
	return agency, args.Error(1)
}

func (m *AgencyRepository) FindAll(ctx context.Context, request *requests.FindAllAgencies) ([]models.Agency, int, error) {
	args := m.Called(ctx, request)
	agencies, _ := args.Get(0).([]models.Agency)
	return agencies, args.Int(1), args.Error(2)
}

func (m *AgencyRepository) Update(ctx context.Context, agency *models.Agency) error {
	return m.Called(ctx, agency).Error(0)
}

func (m *AgencyRepository) SoftDelete(ctx context.Context, agencyID string, at time.Time) error {
	return m.Called(ctx, agencyID, at).Error(0)
}

func (m *AgencyRepository) MarkVerified(ctx context.Context, agencyID string, at time.Time) error {
	return m.Called(ctx, agencyID, at).Error(0)
}

type AgencyMemberRepository struct{ mock.Mock }

func (m *AgencyMemberRepository) Create(ctx context.Context, member *models.AgencyMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *AgencyMemberRepository) FindByID(ctx context.Context, memberID string) (*models.AgencyMember, error) {
	args := m.Called(ctx, memberID)
	member, _ := args.Get(0).(*models.AgencyMember)
	return member, args.Error(1)
}

func (m *AgencyMemberRepository) FindMembership(ctx context.Context, agencyID, profileID string) (*models.AgencyMember, error) {
	args := m.Called(ctx, agencyID, profileID)
	member, _ := args.Get(0).(*models.AgencyMember)
	return member, args.Error(1)
}

func (m *AgencyMemberRepository) FindAllByAgencyID(ctx context.Context, agencyID string) ([]models.AgencyMember, error) {
	args := m.Called(ctx, agencyID)
	members, _ := args.Get(0).([]models.AgencyMember)
	return members, args.Error(1)
}

func (m *AgencyMemberRepository) FindProfileIDsByAgencyID(ctx context.Context, agencyID string) ([]string, error) {
	args := m.Called(ctx, agencyID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *AgencyMemberRepository) DeleteUnlessLastOwner(ctx context.Context, agencyID, memberID string) (bool, error) {
	args := m.Called(ctx, agencyID, memberID)
	return args.Bool(0), args.Error(1)
}

type SwitchRequestRepository struct{ mock.Mock }

func (m *SwitchRequestRepository) Create(ctx context.Context, switchRequest *models.SwitchRequest, history *models.SwitchRequestStatusHistory, conversation *models.Conversation) error {
	return m.Called(ctx, switchRequest, history, conversation).Error(0)
}

func (m *SwitchRequestRepository) FindByID(ctx context.Context, switchRequestID string) (*models.SwitchRequest, error) {
	args := m.Called(ctx, switchRequestID)
	switchRequest, _ := args.Get(0).(*models.SwitchRequest)
	return switchRequest, args.Error(1)
}

func (m *SwitchRequestRepository) FindAll(ctx context.Context, request *requests.FindAllSwitchRequests) ([]models.SwitchRequest, int, error) {
	args := m.Called(ctx, request)
	switchRequests, _ := args.Get(0).([]models.SwitchRequest)
	return switchRequests, args.Int(1), args.Error(2)
}

func (m *SwitchRequestRepository) ExistsOpenForAgency(ctx context.Context, patientID, newAgencyID string) (bool, error) {
	args := m.Called(ctx, patientID, newAgencyID)
	return args.Bool(0), args.Error(1)
}

func (m *SwitchRequestRepository) ApplyTransition(ctx context.Context, transition *models.SwitchRequestTransition) (*models.SwitchRequest, error) {
	args := m.Called(ctx, transition)
	switchRequest, _ := args.Get(0).(*models.SwitchRequest)
	return switchRequest, args.Error(1)
}

func (m *SwitchRequestRepository) FindHistory(ctx context.Context, switchRequestID string) ([]models.SwitchRequestStatusHistory, error) {
	args := m.Called(ctx, switchRequestID)
	history, _ := args.Get(0).([]models.SwitchRequestStatusHistory)
	return history, args.Error(1)
}

func (m *SwitchRequestRepository) FindStaleSubmitted(ctx context.Context, submittedBefore time.Time, limit int) ([]models.SwitchRequest, error) {
	args := m.Called(ctx, submittedBefore, limit)
	switchRequests, _ := args.Get(0).([]models.SwitchRequest)
	return switchRequests, args.Error(1)
}

func (m *SwitchRequestRepository) MarkReminded(ctx context.Context, switchRequestID string, at time.Time) error {
	return m.Called(ctx, switchRequestID, at).Error(0)
}

type DocumentRepository struct{ mock.Mock }

func (m *DocumentRepository) Create(ctx context.Context, document *models.Document) error {
	return m.Called(ctx, document).Error(0)
}

func (m *DocumentRepository) FindByID(ctx context.Context, documentID string) (*models.Document, error) {
	args := m.Called(ctx, documentID)
	document, _ := args.Get(0).(*models.Document)
	return document, args.Error(1)
}

func (m *DocumentRepository) FindAllBySwitchRequestID(ctx context.Context, switchRequestID string) ([]models.Document, error) {
	args := m.Called(ctx, switchRequestID)
	documents, _ := args.Get(0).([]models.Document)
	return documents, args.Error(1)
}

func (m *DocumentRepository) SoftDeleteIfUnsigned(ctx context.Context, documentID string, at time.Time) (bool, error) {
	args := m.Called(ctx, documentID, at)
	return args.Bool(0), args.Error(1)
}

type ESignatureRepository struct{ mock.Mock }

func (m *ESignatureRepository) Create(ctx context.Context, signature *models.ESignature) error {
	return m.Called(ctx, signature).Error(0)
}

func (m *ESignatureRepository) FindByID(ctx context.Context, signatureID string) (*models.ESignature, error) {
	args := m.Called(ctx, signatureID)
	signature, _ := args.Get(0).(*models.ESignature)
	return signature, args.Error(1)
}

func (m *ESignatureRepository) FindAllBySwitchRequestID(ctx context.Context, switchRequestID string) ([]models.ESignature, error) {
	args := m.Called(ctx, switchRequestID)
	signatures, _ := args.Get(0).([]models.ESignature)
	return signatures, args.Error(1)
}

func (m *ESignatureRepository) ExistsForSigner(ctx context.Context, signerID, documentID, switchRequestID string) (bool, error) {
	args := m.Called(ctx, signerID, documentID, switchRequestID)
	return args.Bool(0), args.Error(1)
}

type ConversationRepository struct{ mock.Mock }

func (m *ConversationRepository) FindByID(ctx context.Context, conversationID string) (*models.Conversation, error) {
	args := m.Called(ctx, conversationID)
	conversation, _ := args.Get(0).(*models.Conversation)
	return conversation, args.Error(1)
}

func (m *ConversationRepository) FindBySwitchRequestID(ctx context.Context, switchRequestID string) (*models.Conversation, error) {
	args := m.Called(ctx, switchRequestID)
	conversation, _ := args.Get(0).(*models.Conversation)
	return conversation, args.Error(1)
}

func (m *ConversationRepository) FindAll(ctx context.Context, request *requests.FindAllConversations, viewerID string) ([]models.Conversation, error) {
	args := m.Called(ctx, request, viewerID)
	conversations, _ := args.Get(0).([]models.Conversation)
	return conversations, args.Error(1)
}

func (m *ConversationRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *ConversationRepository) FindMessages(ctx context.Context, request *requests.FindMessages) ([]models.Message, error) {
	args := m.Called(ctx, request)
	messages, _ := args.Get(0).([]models.Message)
	return messages, args.Error(1)
}

func (m *ConversationRepository) MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error) {
	args := m.Called(ctx, conversationID, readerID, at)
	return args.Get(0).(int64), args.Error(1)
}

type NotificationRepository struct{ mock.Mock }

func (m *NotificationRepository) CreateMany(ctx context.Context, notifications []models.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

func (m *NotificationRepository) FindAll(ctx context.Context, request *requests.FindAllNotifications) ([]models.Notification, int, error) {
	args := m.Called(ctx, request)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Int(1), args.Error(2)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, notificationID, recipientID string, at time.Time) (bool, error) {
	args := m.Called(ctx, notificationID, recipientID, at)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, error) {
	args := m.Called(ctx, recipientID, at)
	return args.Get(0).(int64), args.Error(1)
}

type AuditLogRepository struct{ mock.Mock }

func (m *AuditLogRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *AuditLogRepository) FindAll(ctx context.Context, request *requests.FindAllAuditLogs) ([]models.AuditLog, int, error) {
	args := m.Called(ctx, request)
	entries, _ := args.Get(0).([]models.AuditLog)
	return entries, args.Int(1), args.Error(2)
}
