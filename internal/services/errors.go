package services

import (
	"context"
	"errors"
	"time"

	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// repoErr maps a repository sentinel onto the matching AppError; anything
// else is reported as a database failure.
func repoErr(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrAuditionNotFound):
		return apperrors.ErrAuditionNotFound
	case errors.Is(err, repositories.ErrActorNotFound):
		return apperrors.ErrActorNotFound
	case errors.Is(err, repositories.ErrExpenseNotFound):
		return apperrors.ErrExpenseNotFound
	case errors.Is(err, repositories.ErrContactNotFound):
		return apperrors.ErrContactNotFound
	case errors.Is(err, repositories.ErrBookingNotFound):
		return apperrors.ErrBookingNotFound
	case errors.Is(err, repositories.ErrSubscriptionNotFound):
		return apperrors.ErrSubscriptionNotFound
	case errors.Is(err, repositories.ErrUploadNotFound):
		return apperrors.ErrUploadNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.NewNotFoundError("user", "User not found")
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	}
	return apperrors.DatabaseError(err)
}

// effectiveTier is FREE when the user has no subscription row.
func effectiveTier(db *gorm.DB, subs repositories.SubscriptionRepository, userID string) (models.SubscriptionTier, error) {
	sub, err := subs.FindByUserID(db, userID)
	if errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return models.SubscriptionTierFree, nil
	}
	if err != nil {
		return "", apperrors.DatabaseError(err)
	}
	return sub.EffectiveTier(), nil
}

const dashboardTTL = 60 * time.Second

func dashboardKey(userID string) string {
	return "dashboard:" + userID
}

// invalidateDashboard drops the cached dashboard after an audition or expense write.
func invalidateDashboard(ctx context.Context, c cache.Cache, userID string) {
	if err := c.Delete(ctx, dashboardKey(userID)); err != nil {
		logger.CtxWarn(ctx, "failed to invalidate dashboard cache", "user_id", userID, "error", err)
	}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
