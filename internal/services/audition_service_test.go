package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/testutil"
	"auditionhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuditionRequest(title string) *dto.CreateAuditionRequest {
	return &dto.CreateAuditionRequest{
		ProjectTitle: title,
		RoleName:     "Lead Kid",
		Type:         models.AuditionTypeFilm,
	}
}

func TestAuditionService_CreateDefaultsToPending(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	user := testutil.CreateUser(t, db, "")

	audition, err := svc.CreateAudition(context.Background(), db, user.ID, newAuditionRequest("  Summer Lights "))

	require.NoError(t, err)
	assert.Equal(t, "Summer Lights", audition.ProjectTitle)
	assert.Equal(t, models.AuditionStatusPending, audition.Status)
	assert.Equal(t, models.AuditionSourceManual, audition.Source)
}

func TestAuditionService_FreePlanMonthlyLimit(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	user := testutil.CreateUser(t, db, "")
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.CreateAudition(ctx, db, user.ID, newAuditionRequest(fmt.Sprintf("Project %d", i)))
		require.NoError(t, err)
	}

	// 2. Act
	_, err := svc.CreateAudition(ctx, db, user.ID, newAuditionRequest("One too many"))

	// 3. Assert
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodePlanLimitExceeded, appErr.Code)

	testutil.SetTier(t, db, user.ID, models.SubscriptionTierPremiumMonthly)
	_, err = svc.CreateAudition(ctx, db, user.ID, newAuditionRequest("Premium has no limit"))
	assert.NoError(t, err)
}

func TestAuditionService_MonthlyLimitIgnoresImportedAuditions(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	user := testutil.CreateUser(t, db, "")

	imported := make([]models.Audition, 12)
	for i := range imported {
		imported[i] = models.Audition{
			UserID:       user.ID,
			ProjectTitle: fmt.Sprintf("Imported %d", i),
			RoleName:     "Extra",
			Type:         models.AuditionTypeTV,
			Status:       models.AuditionStatusPending,
			Source:       models.AuditionSourceEmail,
		}
	}
	require.NoError(t, repositories.NewAuditionRepository().CreateBatch(db, imported))

	_, err := svc.CreateAudition(context.Background(), db, user.ID, newAuditionRequest("Manual"))
	assert.NoError(t, err)
}

func TestAuditionService_ActorMustBelongToUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	owner := testutil.CreateUser(t, db, "")
	other := testutil.CreateUser(t, db, "")

	actor, err := NewActorService(repositories.NewActorRepository(), repositories.NewSubscriptionRepository()).
		CreateActor(db, other.ID, &dto.CreateActorRequest{Name: "Not Yours", Age: 9})
	require.NoError(t, err)

	req := newAuditionRequest("Borrowed actor")
	req.ActorID = &actor.ID
	_, err = svc.CreateAudition(context.Background(), db, owner.ID, req)

	assert.ErrorIs(t, err, apperrors.ErrActorNotFound)
}

func TestAuditionService_GetIsScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	owner := testutil.CreateUser(t, db, "")
	other := testutil.CreateUser(t, db, "")

	audition, err := svc.CreateAudition(context.Background(), db, owner.ID, newAuditionRequest("Private"))
	require.NoError(t, err)

	_, err = svc.GetAudition(db, other.ID, audition.ID)
	assert.ErrorIs(t, err, apperrors.ErrAuditionNotFound)

	err = svc.DeleteAudition(context.Background(), db, other.ID, audition.ID)
	assert.ErrorIs(t, err, apperrors.ErrAuditionNotFound)
}

func TestAuditionService_UpdateStatusPublishesCallbackAndBooked(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	publisher := &recordingPublisher{}
	svc := newTestAuditionService(publisher)
	user := testutil.CreateUser(t, db, "")
	ctx := context.Background()
	audition, err := svc.CreateAudition(ctx, db, user.ID, newAuditionRequest("Status Flow"))
	require.NoError(t, err)

	// 2. Act
	_, err = svc.UpdateStatus(ctx, db, user.ID, audition.ID, models.AuditionStatusSubmitted)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, db, user.ID, audition.ID, models.AuditionStatusCallback)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, db, user.ID, audition.ID, models.AuditionStatusCallback)
	require.NoError(t, err)
	updated, err := svc.UpdateStatus(ctx, db, user.ID, audition.ID, models.AuditionStatusBooked)
	require.NoError(t, err)

	// 3. Assert
	assert.Equal(t, models.AuditionStatusBooked, updated.Status)
	require.Len(t, publisher.events, 2)
	assert.Equal(t, events.TypeAuditionStatusChanged, publisher.events[0].Type)
	assert.Equal(t, "SUBMITTED", publisher.events[0].Payload.OldStatus)
	assert.Equal(t, "CALLBACK", publisher.events[0].Payload.NewStatus)
	assert.Equal(t, "BOOKED", publisher.events[1].Payload.NewStatus)
}

func TestAuditionService_UpdateStatusRejectsUnknown(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	user := testutil.CreateUser(t, db, "")
	audition, err := svc.CreateAudition(context.Background(), db, user.ID, newAuditionRequest("X"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), db, user.ID, audition.ID, "MAYBE")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestAuditionService_UpdatePartialAndDetachActor(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	user := testutil.CreateUser(t, db, "")
	ctx := context.Background()

	actor, err := NewActorService(repositories.NewActorRepository(), repositories.NewSubscriptionRepository()).
		CreateActor(db, user.ID, &dto.CreateActorRequest{Name: "Mia", Age: 8})
	require.NoError(t, err)

	req := newAuditionRequest("Partial")
	req.ActorID = &actor.ID
	req.Location = "Burbank"
	audition, err := svc.CreateAudition(ctx, db, user.ID, req)
	require.NoError(t, err)

	updated, err := svc.UpdateAudition(ctx, db, user.ID, audition.ID, &dto.UpdateAuditionRequest{
		Notes:   ptr("bring headshot"),
		ActorID: ptr(""),
	})

	require.NoError(t, err)
	assert.Equal(t, "bring headshot", updated.Notes)
	assert.Equal(t, "Burbank", updated.Location)
	assert.Nil(t, updated.ActorID)

	_, err = svc.UpdateAudition(ctx, db, user.ID, audition.ID, &dto.UpdateAuditionRequest{ProjectTitle: ptr("   ")})
	assert.Error(t, err)
}

func TestAuditionService_ListTabsAndSearch(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	user := testutil.CreateUser(t, db, "")
	ctx := context.Background()

	mk := func(title string, date time.Time, status models.AuditionStatus) {
		req := newAuditionRequest(title)
		req.AuditionDate = &date
		req.Status = status
		_, err := svc.CreateAudition(ctx, db, user.ID, req)
		require.NoError(t, err)
	}
	mk("Later Show", now.Add(72*time.Hour), models.AuditionStatusPending)
	mk("Sooner Show", now.Add(24*time.Hour), models.AuditionStatusSubmitted)
	mk("Old Show", now.Add(-72*time.Hour), models.AuditionStatusPending)
	mk("Booked Future", now.Add(48*time.Hour), models.AuditionStatusBooked)

	// 2. Act
	upcoming, err := svc.ListAuditions(db, user.ID, &dto.AuditionListQuery{Tab: algorithms.TabUpcoming}, 1, 20)
	require.NoError(t, err)
	search, err := svc.ListAuditions(db, user.ID, &dto.AuditionListQuery{Tab: "all", Search: "old"}, 1, 20)
	require.NoError(t, err)

	// 3. Assert
	items := upcoming.Data.([]models.Audition)
	require.Len(t, items, 2)
	assert.Equal(t, "Sooner Show", items[0].ProjectTitle)
	assert.Equal(t, "Later Show", items[1].ProjectTitle)

	assert.Equal(t, int64(1), search.Total)
	assert.Equal(t, "Old Show", search.Data.([]models.Audition)[0].ProjectTitle)
}

func TestAuditionService_Calendar(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditionService(nil)
	user := testutil.CreateUser(t, db, "")
	ctx := context.Background()

	day := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	callback := day.Add(48 * time.Hour)
	req := newAuditionRequest("Calendar Show")
	req.AuditionDate = &day
	req.CallbackDate = &callback
	audition, err := svc.CreateAudition(ctx, db, user.ID, req)
	require.NoError(t, err)

	entries, err := svc.Calendar(db, user.ID, day.Add(-time.Hour), day.Add(72*time.Hour))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, dto.CalendarEventAudition, entries[0].Kind)
	assert.True(t, day.Add(time.Hour).Equal(entries[0].End))
	assert.Equal(t, audition.ID+"-callback", entries[1].ID)
	assert.Equal(t, dto.CalendarEventCallback, entries[1].Kind)

	_, err = svc.Calendar(db, user.ID, day, day.Add(-time.Hour))
	assert.Error(t, err)
}
