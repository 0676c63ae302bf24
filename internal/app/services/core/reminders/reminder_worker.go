package reminders

import (
	"context"
	"fmt"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/services/shared/metrics"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	runResultSent    = "ok"
	runResultSkipped = "skipped"
	runResultError   = "error"
	fallbackCronSpec = "@hourly"
	unlockTimeout    = 5 * time.Second
)

// Worker reminds receiving agencies about switch requests left in submitted.
// Only the instance holding the redis lock does the work for a given tick.
type Worker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	locker         contracts.LockerService
	switchRequests contracts.SwitchRequestRepository
	members        contracts.AgencyMemberRepository
	notifications  contracts.NotificationUsecase
	cron           *cron.Cron
	runCtx         context.Context
	cancel         context.CancelFunc
	now            func() time.Time
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerService contracts.LockerService,
	switchRequestRepository contracts.SwitchRequestRepository,
	agencyMemberRepository contracts.AgencyMemberRepository,
	notificationUsecase contracts.NotificationUsecase,
) *Worker {
	return &Worker{
		log:            log,
		cfg:            cfg,
		locker:         lockerService,
		switchRequests: switchRequestRepository,
		members:        agencyMemberRepository,
		notifications:  notificationUsecase,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	spec := w.cfg.Worker.ReminderCronSpec
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) }); err != nil {
		w.log.Warn("reminders.worker: invalid cron spec; falling back to @hourly",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c

	w.log.Info("reminders.worker: started", zap.String(constvars.LoggingCronSpecKey, spec))
}

// Stop cancels the in-flight run and waits for it to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) int {
	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
	ttl := time.Duration(w.cfg.Worker.ReminderLockTTLInSeconds) * time.Second

	acquired, lockValue, err := w.locker.TryLock(ctx, constvars.RedisReminderWorkerLockKey, ttl)
	if err != nil {
		w.log.Warn("reminders.worker: lock attempt failed", zap.Error(err))
		metrics.RecordReminderRun(runResultError, 0)
		return 0
	}
	if !acquired {
		w.log.Info("reminders.worker: lock held by another instance")
		metrics.RecordReminderRun(runResultSkipped, 0)
		return 0
	}
	defer func() {
		// Stop cancels ctx mid-run; the lock must still be released.
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
		defer cancel()
		if err := w.locker.Unlock(unlockCtx, constvars.RedisReminderWorkerLockKey, lockValue); err != nil {
			w.log.Warn("reminders.worker: unlock failed", zap.Error(err))
		}
	}()

	sent := 0
	err = utils.LogOperation(w.log, "reminders.remindStale", requestID, func() error {
		var err error
		sent, err = w.remindStale(ctx)
		return err
	})
	if err != nil {
		metrics.RecordReminderRun(runResultError, 0)
		return 0
	}

	metrics.RecordReminderRun(runResultSent, sent)
	return sent
}

// remindStale notifies the new agency about each stale request. A request whose
// notification fails keeps reminded_at empty and is retried on the next run.
func (w *Worker) remindStale(ctx context.Context) (int, error) {
	now := w.now()
	before := now.Add(-time.Duration(w.cfg.Worker.StaleSwitchRequestAgeInHours) * time.Hour)
	stale, err := w.switchRequests.FindStaleSubmitted(ctx, before, w.cfg.Worker.ReminderBatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, sr := range stale {
		if ctx.Err() != nil {
			break
		}

		memberIDs, err := w.members.FindProfileIDsByAgencyID(ctx, sr.NewAgencyID)
		if err != nil {
			w.log.Error("reminders.worker: fetching agency members failed",
				zap.String(constvars.LoggingSwitchRequestIDKey, sr.ID),
				zap.Error(err),
			)
			continue
		}

		if len(memberIDs) > 0 {
			err = w.notifications.Notify(ctx, &requests.CreateNotification{
				RecipientIDs: memberIDs,
				Type:         constvars.NotificationTypeSwitchRequestReminder,
				Title:        "Switch request awaiting review",
				Body:         fmt.Sprintf("A switch request submitted on %s is still waiting for review.", sr.CreatedAt.Format("2006-01-02")),
				Link:         fmt.Sprintf("%s/switch-requests/%s", w.cfg.App.FrontendDomain, sr.ID),
			})
			if err != nil {
				w.log.Error("reminders.worker: notify failed",
					zap.String(constvars.LoggingSwitchRequestIDKey, sr.ID),
					zap.Error(err),
				)
				continue
			}
		}

		if err := w.switchRequests.MarkReminded(ctx, sr.ID, now); err != nil {
			w.log.Error("reminders.worker: marking reminded failed",
				zap.String(constvars.LoggingSwitchRequestIDKey, sr.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	w.log.Info("reminders.worker: run finished",
		zap.Int("stale", len(stale)),
		zap.Int(constvars.LoggingCountKey, sent),
	)
	return sent, nil
}
