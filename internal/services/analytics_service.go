package services

import (
	"context"
	"errors"
	"time"

	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	dashboardUpcomingLimit = 5
	dashboardExpenseLimit  = 5
	recentActivityLimit    = 5
)

type AnalyticsService interface {
	Dashboard(ctx context.Context, db *gorm.DB, userID string) (*dto.Dashboard, error)
	Analytics(db *gorm.DB, userID string) (*dto.Analytics, error)
}

type AnalyticsServiceImpl struct {
	auditionRepo repositories.AuditionRepository
	expenseRepo  repositories.ExpenseRepository
	actorRepo    repositories.ActorRepository
	cache        cache.Cache
	now          func() time.Time
}

func NewAnalyticsService(
	auditionRepo repositories.AuditionRepository,
	expenseRepo repositories.ExpenseRepository,
	actorRepo repositories.ActorRepository,
	c cache.Cache,
) AnalyticsService {
	return &AnalyticsServiceImpl{
		auditionRepo: auditionRepo,
		expenseRepo:  expenseRepo,
		actorRepo:    actorRepo,
		cache:        c,
		now:          time.Now,
	}
}

// Dashboard is cached per user; audition and expense writes drop the entry.
func (s *AnalyticsServiceImpl) Dashboard(ctx context.Context, db *gorm.DB, userID string) (*dto.Dashboard, error) {
	var cached dto.Dashboard
	err := s.cache.Get(ctx, dashboardKey(userID), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.CtxWarn(ctx, "dashboard cache read failed", "error", err)
	}

	out, err := s.buildDashboard(db, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, dashboardKey(userID), out, dashboardTTL); err != nil {
		logger.CtxWarn(ctx, "dashboard cache write failed", "error", err)
	}
	return out, nil
}

func (s *AnalyticsServiceImpl) buildDashboard(db *gorm.DB, userID string) (*dto.Dashboard, error) {
	now := s.now()

	auditions, err := s.auditionRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	expenses, err := s.expenseRepo.List(db, userID, repositories.ExpenseFilter{})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	recentExpenses, err := s.expenseRepo.Recent(db, userID, dashboardExpenseLimit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	activeActors, err := s.actorRepo.CountActive(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	upcoming := algorithms.FilterAuditions(auditions, algorithms.AuditionFilter{Tab: algorithms.TabUpcoming}, now)
	sortByAuditionDate(upcoming)
	if len(upcoming) > dashboardUpcomingLimit {
		upcoming = upcoming[:dashboardUpcomingLimit]
	}

	summary := SummarizeExpenses(expenses)
	return &dto.Dashboard{
		TotalAuditions:     len(auditions),
		AuditionsByStatus:  algorithms.CountByStatus(auditions),
		UpcomingAuditions:  upcoming,
		CallbackRate:       algorithms.CallbackRate(auditions),
		BookingRate:        algorithms.BookingRate(auditions),
		ActiveActors:       activeActors,
		TotalExpenses:      summary.Total,
		ReimbursableOwed:   summary.ReimbursableOutstanding,
		ExpensesByCategory: summary.ByCategory,
		RecentExpenses:     nonNil(recentExpenses),
		AuditionsByMonth:   algorithms.CountByMonthOfYear(auditions, now.Year()),
	}, nil
}

func (s *AnalyticsServiceImpl) Analytics(db *gorm.DB, userID string) (*dto.Analytics, error) {
	auditions, err := s.auditionRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	recent, err := s.auditionRepo.Recent(db, userID, recentActivityLimit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.Analytics{
		Insights:       algorithms.GenerateInsights(auditions),
		Trends:         algorithms.AnalyzeTrends(auditions, s.now()),
		SuccessRate:    algorithms.SuccessRate(auditions),
		RecentActivity: nonNil(recent),
	}, nil
}

// nonNil keeps empty lists as [] in JSON.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
