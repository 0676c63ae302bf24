package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts/mocks"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type workerFixture struct {
	locker         *mocks.LockerService
	switchRequests *mocks.SwitchRequestRepository
	members        *mocks.AgencyMemberRepository
	notifications  *mocks.NotificationUsecase
	worker         *Worker
	now            time.Time
}

func newWorkerFixture() *workerFixture {
	cfg := &config.InternalConfig{}
	cfg.Worker.ReminderCronSpec = "@hourly"
	cfg.Worker.StaleSwitchRequestAgeInHours = 72
	cfg.Worker.ReminderLockTTLInSeconds = 300
	cfg.Worker.ReminderBatchSize = 50

	f := &workerFixture{
		locker:         new(mocks.LockerService),
		switchRequests: new(mocks.SwitchRequestRepository),
		members:        new(mocks.AgencyMemberRepository),
		notifications:  new(mocks.NotificationUsecase),
		now:            time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	}
	f.worker = NewWorker(zap.NewNop(), cfg, f.locker, f.switchRequests, f.members, f.notifications)
	f.worker.now = func() time.Time { return f.now }
	return f
}

func TestWorker_RunOnceRemindsStaleRequests(t *testing.T) {
	f := newWorkerFixture()
	f.locker.On("TryLock", mock.Anything, constvars.RedisReminderWorkerLockKey, 300*time.Second).Return(true, "lock-1", nil)
	f.locker.On("Unlock", mock.Anything, constvars.RedisReminderWorkerLockKey, "lock-1").Return(nil)

	stale := []models.SwitchRequest{
		{ID: "sr-1", NewAgencyID: "agency-a", Status: constvars.SwitchRequestStatusSubmitted},
		{ID: "sr-2", NewAgencyID: "agency-b", Status: constvars.SwitchRequestStatusSubmitted},
		{ID: "sr-3", NewAgencyID: "agency-c", Status: constvars.SwitchRequestStatusSubmitted},
	}
	f.switchRequests.On("FindStaleSubmitted", mock.Anything, f.now.Add(-72*time.Hour), 50).Return(stale, nil)

	f.members.On("FindProfileIDsByAgencyID", mock.Anything, "agency-a").Return([]string{"owner-a"}, nil)
	f.members.On("FindProfileIDsByAgencyID", mock.Anything, "agency-b").Return([]string{"owner-b"}, nil)
	f.members.On("FindProfileIDsByAgencyID", mock.Anything, "agency-c").Return(nil, errors.New("db down"))

	f.notifications.On("Notify", mock.Anything, mock.MatchedBy(func(n *requests.CreateNotification) bool {
		return n.RecipientIDs[0] == "owner-a"
	})).Return(nil)
	f.notifications.On("Notify", mock.Anything, mock.MatchedBy(func(n *requests.CreateNotification) bool {
		return n.RecipientIDs[0] == "owner-b"
	})).Return(errors.New("queue down"))

	f.switchRequests.On("MarkReminded", mock.Anything, "sr-1", f.now).Return(nil)

	sent := f.worker.runOnce(context.Background())
	assert.Equal(t, 1, sent)
	f.switchRequests.AssertNotCalled(t, "MarkReminded", mock.Anything, "sr-2", mock.Anything)
	f.switchRequests.AssertNotCalled(t, "MarkReminded", mock.Anything, "sr-3", mock.Anything)
	f.locker.AssertExpectations(t)
}

func TestWorker_RunOnceSkipsWithoutLock(t *testing.T) {
	f := newWorkerFixture()
	f.locker.On("TryLock", mock.Anything, constvars.RedisReminderWorkerLockKey, mock.Anything).Return(false, "", nil)

	assert.Equal(t, 0, f.worker.runOnce(context.Background()))
	f.switchRequests.AssertNotCalled(t, "FindStaleSubmitted", mock.Anything, mock.Anything, mock.Anything)
	f.locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorker_StartAndStopWithInvalidSpec(t *testing.T) {
	f := newWorkerFixture()
	f.worker.cfg.Worker.ReminderCronSpec = "not a spec"

	f.worker.Start(context.Background())
	assert.Len(t, f.worker.cron.Entries(), 1)
	f.worker.Stop()
}

func TestWorker_RunOnceReleasesLockWhenLookupFails(t *testing.T) {
	f := newWorkerFixture()
	f.locker.On("TryLock", mock.Anything, constvars.RedisReminderWorkerLockKey, mock.Anything).Return(true, "lock-2", nil)
	f.locker.On("Unlock", mock.Anything, constvars.RedisReminderWorkerLockKey, "lock-2").Return(nil).Once()
	f.switchRequests.On("FindStaleSubmitted", mock.Anything, mock.Anything, 50).Return(nil, errors.New("db down"))

	assert.Equal(t, 0, f.worker.runOnce(context.Background()))
	f.locker.AssertExpectations(t)
	f.notifications.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestWorker_RunOnceReleasesLockAfterCancel(t *testing.T) {
	f := newWorkerFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.locker.On("TryLock", mock.Anything, constvars.RedisReminderWorkerLockKey, mock.Anything).Return(true, "lock-3", nil)
	f.locker.On("Unlock",
		mock.MatchedBy(func(unlockCtx context.Context) bool { return unlockCtx.Err() == nil }),
		constvars.RedisReminderWorkerLockKey, "lock-3",
	).Return(nil).Once()
	f.switchRequests.On("FindStaleSubmitted", mock.Anything, mock.Anything, 50).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled)

	assert.Equal(t, 0, f.worker.runOnce(ctx))
	f.locker.AssertExpectations(t)
}
