package workers

import (
	"context"
	"errors"
	"time"

	"auditionhub_backend/internal/email"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/metrics"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"

	"gorm.io/gorm"
)

const reminderWorkerName = "audition_reminder"

// reminderLead is how far ahead an audition must be to get its reminder.
const reminderLead = 24 * time.Hour

// AuditionMailer is the part of email.Notifier the workers use.
type AuditionMailer interface {
	SendAuditionReminder(ctx context.Context, to, name string, a email.AuditionInfo) error
	SendAuditionStatus(ctx context.Context, to, name string, a email.AuditionInfo) error
}

// ReminderWorker emails parents about auditions in the next 24 hours, once per audition.
type ReminderWorker struct {
	db           *gorm.DB
	auditionRepo repositories.AuditionRepository
	userRepo     repositories.UserRepository
	mailer       AuditionMailer
	interval     time.Duration
	now          func() time.Time
}

func NewReminderWorker(db *gorm.DB, auditionRepo repositories.AuditionRepository, userRepo repositories.UserRepository, mailer AuditionMailer, interval time.Duration) *ReminderWorker {
	return &ReminderWorker{
		db:           db,
		auditionRepo: auditionRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		interval:     interval,
		now:          time.Now,
	}
}

// Run ticks until ctx is cancelled.
func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Reminder worker started", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			sent, err := w.RunOnce(ctx)
			logger.WorkerLog(reminderWorkerName, "send_reminders", sent, err)
			metrics.WorkerRun(reminderWorkerName, err)
		}
	}
}

// RunOnce sends every due reminder and returns how many were sent. A failed
// send leaves reminder_sent_at empty so the next pass retries it.
func (w *ReminderWorker) RunOnce(ctx context.Context) (int64, error) {
	now := w.now().UTC()
	due, err := w.auditionRepo.FindDueForReminder(w.db.WithContext(ctx), now, now.Add(reminderLead))
	if err != nil {
		return 0, err
	}

	var sent int64
	var errs []error
	users := make(map[string]*models.User)
	for i := range due {
		if ctx.Err() != nil {
			break
		}
		a := &due[i]

		user, ok := users[a.UserID]
		if !ok {
			user, err = w.userRepo.FindByID(w.db, a.UserID)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			users[a.UserID] = user
		}

		if err := w.mailer.SendAuditionReminder(ctx, user.Email, user.Name, auditionInfo(a)); err != nil {
			logger.Warn("audition reminder not sent", "audition_id", a.ID, "error", err.Error())
			errs = append(errs, err)
			continue
		}
		if err := w.auditionRepo.MarkReminderSent(w.db, a.ID, now); err != nil {
			errs = append(errs, err)
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

func auditionInfo(a *models.Audition) email.AuditionInfo {
	return email.AuditionInfo{
		ID:              a.ID,
		ProjectTitle:    a.ProjectTitle,
		RoleName:        a.RoleName,
		Status:          string(a.Status),
		Date:            a.AuditionDate,
		Location:        a.Location,
		VirtualLink:     a.VirtualLink,
		CastingDirector: a.CastingDirector,
	}
}
