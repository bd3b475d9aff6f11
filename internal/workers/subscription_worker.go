package workers

import (
	"context"
	"time"

	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/metrics"
	"auditionhub_backend/internal/repositories"

	"gorm.io/gorm"
)

const subscriptionWorkerName = "subscription_expiry"

// SubscriptionExpirer is implemented by services.SubscriptionService.
type SubscriptionExpirer interface {
	ExpireLapsed(db *gorm.DB, now time.Time) (int64, error)
}

// SubscriptionWorker cancels lapsed paid plans and prunes dead refresh tokens.
type SubscriptionWorker struct {
	db               *gorm.DB
	subscriptions    SubscriptionExpirer
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
	now              func() time.Time
}

func NewSubscriptionWorker(db *gorm.DB, subscriptions SubscriptionExpirer, refreshTokenRepo repositories.RefreshTokenRepository, interval time.Duration) *SubscriptionWorker {
	return &SubscriptionWorker{
		db:               db,
		subscriptions:    subscriptions,
		refreshTokenRepo: refreshTokenRepo,
		interval:         interval,
		now:              time.Now,
	}
}

func (w *SubscriptionWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Subscription worker started", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce returns the number of subscriptions it canceled.
func (w *SubscriptionWorker) RunOnce(ctx context.Context) int64 {
	db := w.db.WithContext(ctx)

	expired, err := w.subscriptions.ExpireLapsed(db, w.now().UTC())
	logger.WorkerLog(subscriptionWorkerName, "expire_lapsed", expired, err)
	metrics.WorkerRun(subscriptionWorkerName, err)

	if w.refreshTokenRepo != nil {
		cleaned, err := w.refreshTokenRepo.CleanExpired(db)
		logger.WorkerLog(subscriptionWorkerName, "clean_refresh_tokens", cleaned, err)
	}
	return expired
}
