package services

import (
	"context"
	"testing"
	"time"

	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAuditions(t *testing.T, userID string, statuses ...models.AuditionStatus) []models.Audition {
	t.Helper()
	out := make([]models.Audition, len(statuses))
	for i, status := range statuses {
		out[i] = models.Audition{
			UserID:       userID,
			ProjectTitle: "Seeded " + string(status),
			RoleName:     "Kid",
			Type:         models.AuditionTypeCommercial,
			Status:       status,
			Source:       models.AuditionSourceManual,
		}
	}
	return out
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "")
	auditionRepo := repositories.NewAuditionRepository()
	expenseRepo := repositories.NewExpenseRepository()

	rows := seedAuditions(t, user.ID,
		models.AuditionStatusPending,
		models.AuditionStatusCallback,
		models.AuditionStatusBooked,
		models.AuditionStatusReleased,
	)
	require.NoError(t, auditionRepo.CreateBatch(db, rows))
	require.NoError(t, expenseRepo.Create(db, &models.Expense{
		UserID: user.ID, Amount: 75, Category: models.ExpenseCategoryTravel, Date: time.Now().UTC(), Reimbursable: true,
	}))

	svc := NewAnalyticsService(auditionRepo, expenseRepo, repositories.NewActorRepository(), cache.NoopCache{})

	// 2. Act
	dash, err := svc.Dashboard(context.Background(), db, user.ID)

	// 3. Assert
	require.NoError(t, err)
	assert.Equal(t, 4, dash.TotalAuditions)
	assert.Equal(t, 25.0, dash.CallbackRate)
	assert.Equal(t, 25.0, dash.BookingRate)
	assert.Equal(t, 1, dash.AuditionsByStatus[models.AuditionStatusReleased])
	assert.Equal(t, 75.0, dash.TotalExpenses)
	assert.Equal(t, 75.0, dash.ReimbursableOwed)
	assert.Len(t, dash.RecentExpenses, 1)
	assert.Len(t, dash.AuditionsByMonth, 12)
}

func TestAnalyticsService_DashboardCacheIsInvalidatedByWrites(t *testing.T) {
	// 1. Arrange
	mr := miniredis.RunT(t)
	client := cache.NewRedisClient(mr.Addr(), "", 0)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })
	c := cache.New(client, "test")

	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "")
	auditionRepo := repositories.NewAuditionRepository()
	analytics := NewAnalyticsService(auditionRepo, repositories.NewExpenseRepository(), repositories.NewActorRepository(), c)
	auditions := NewAuditionService(auditionRepo, repositories.NewActorRepository(), repositories.NewSubscriptionRepository(), events.NoopPublisher{}, c)
	ctx := context.Background()

	first, err := analytics.Dashboard(ctx, db, user.ID)
	require.NoError(t, err)
	require.Zero(t, first.TotalAuditions)
	assert.True(t, mr.Exists("test:dashboard:"+user.ID))

	// 2. Act
	require.NoError(t, auditionRepo.CreateBatch(db, seedAuditions(t, user.ID, models.AuditionStatusPending)))
	stale, err := analytics.Dashboard(ctx, db, user.ID)
	require.NoError(t, err)

	_, err = auditions.CreateAudition(ctx, db, user.ID, newAuditionRequest("Fresh"))
	require.NoError(t, err)
	fresh, err := analytics.Dashboard(ctx, db, user.ID)
	require.NoError(t, err)

	// 3. Assert
	assert.Zero(t, stale.TotalAuditions, "served from cache")
	assert.Equal(t, 2, fresh.TotalAuditions)
}

func TestAnalyticsService_Analytics(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "")
	auditionRepo := repositories.NewAuditionRepository()
	require.NoError(t, auditionRepo.CreateBatch(db, seedAuditions(t, user.ID,
		models.AuditionStatusCallback,
		models.AuditionStatusBooked,
		models.AuditionStatusPending,
		models.AuditionStatusPending,
	)))
	svc := NewAnalyticsService(auditionRepo, repositories.NewExpenseRepository(), repositories.NewActorRepository(), cache.NoopCache{})

	out, err := svc.Analytics(db, user.ID)

	require.NoError(t, err)
	assert.Equal(t, 50.0, out.SuccessRate)
	assert.Len(t, out.RecentActivity, 4)
	assert.NotNil(t, out.Insights)

	empty, err := svc.Analytics(db, testutil.CreateUser(t, db, "").ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Audition{}, empty.RecentActivity)
	assert.Zero(t, empty.SuccessRate)
}
