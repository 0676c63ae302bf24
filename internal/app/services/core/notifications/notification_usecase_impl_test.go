package notifications

import (
	"context"
	"errors"
	"testing"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts/mocks"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNotificationUsecase() (*notificationUsecase, *mocks.NotificationRepository, *mocks.ProfileRepository, *mocks.MailerService) {
	notifications := new(mocks.NotificationRepository)
	profiles := new(mocks.ProfileRepository)
	mailer := new(mocks.MailerService)
	cfg := &config.InternalConfig{}
	cfg.Mailer.EmailSender = "no-reply@carelink.test"

	return &notificationUsecase{
		NotificationRepository: notifications,
		ProfileRepository:      profiles,
		MailerService:          mailer,
		InternalConfig:         cfg,
		Log:                    zap.NewNop(),
	}, notifications, profiles, mailer
}

func TestNotificationUsecase_NotifyDedupesAndEmails(t *testing.T) {
	uc, notifications, profiles, mailer := newNotificationUsecase()

	notifications.On("CreateMany", mock.Anything, mock.MatchedBy(func(rows []models.Notification) bool {
		return len(rows) == 2 && rows[0].RecipientID == "p-1" && rows[1].RecipientID == "p-2"
	})).Return(nil)
	profiles.On("FindByIDs", mock.Anything, []string{"p-1", "p-2"}).Return([]models.Profile{
		{ID: "p-1", Email: "one@example.com", FullName: "One"},
		{ID: "p-2", Email: "two@example.com", FullName: "Two"},
	}, nil)
	mailer.On("SendEmail", mock.Anything, mock.MatchedBy(func(p *requests.EmailPayload) bool {
		return p.To[0] == "one@example.com" && p.From == "no-reply@carelink.test"
	})).Return(nil).Once()
	mailer.On("SendEmail", mock.Anything, mock.MatchedBy(func(p *requests.EmailPayload) bool {
		return p.To[0] == "two@example.com"
	})).Return(errors.New("queue down")).Once()

	err := uc.Notify(context.Background(), &requests.CreateNotification{
		RecipientIDs: []string{"p-1", "p-2", "p-1", ""},
		Type:         constvars.NotificationTypeNewMessage,
		Title:        "New message",
		Body:         "hello",
	})
	require.NoError(t, err)
	notifications.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestNotificationUsecase_NotifyWithoutRecipients(t *testing.T) {
	uc, notifications, _, _ := newNotificationUsecase()

	require.NoError(t, uc.Notify(context.Background(), &requests.CreateNotification{}))
	notifications.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestNotificationUsecase_NotifyStoreFailureSkipsEmail(t *testing.T) {
	uc, notifications, profiles, _ := newNotificationUsecase()
	notifications.On("CreateMany", mock.Anything, mock.Anything).Return(exceptions.ErrPostgresDBInsertData(errors.New("boom")))

	err := uc.Notify(context.Background(), &requests.CreateNotification{RecipientIDs: []string{"p-1"}})
	require.Error(t, err)
	profiles.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestNotificationUsecase_ScopedToRecipient(t *testing.T) {
	uc, notifications, _, _ := newNotificationUsecase()
	session := &models.Session{ProfileID: "p-1", Role: constvars.RolePatient}

	notifications.On("FindAll", mock.Anything, mock.MatchedBy(func(r *requests.FindAllNotifications) bool {
		return r.RecipientID == "p-1"
	})).Return([]models.Notification{}, 0, nil)
	_, _, err := uc.FindAll(context.Background(), session, &requests.FindAllNotifications{RecipientID: "p-2"})
	require.NoError(t, err)

	notifications.On("MarkRead", mock.Anything, "n-1", "p-1", mock.Anything).Return(false, nil)
	err = uc.MarkRead(context.Background(), session, "n-1")
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 404, customErr.StatusCode)
}
