package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auditionhub_backend/internal/email"
	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	kind string
	to   string
	info email.AuditionInfo
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failOn string // audition id whose reminder fails
}

func (m *fakeMailer) SendAuditionReminder(ctx context.Context, to, name string, a email.AuditionInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == m.failOn {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, sentMail{kind: "reminder", to: to, info: a})
	return nil
}

func (m *fakeMailer) SendAuditionStatus(ctx context.Context, to, name string, a email.AuditionInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{kind: "status", to: to, info: a})
	return nil
}

func createAudition(t *testing.T, db *gorm.DB, userID string, at time.Time, status models.AuditionStatus) *models.Audition {
	t.Helper()
	a := &models.Audition{
		UserID:       userID,
		ProjectTitle: "Project " + at.Format(time.RFC3339),
		RoleName:     "Kid",
		Type:         models.AuditionTypeFilm,
		Status:       status,
		AuditionDate: &at,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestReminderWorker_SendsOncePerAudition(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "")
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	soon := createAudition(t, db, user.ID, now.Add(3*time.Hour), models.AuditionStatusPending)
	createAudition(t, db, user.ID, now.Add(30*time.Hour), models.AuditionStatusPending)
	createAudition(t, db, user.ID, now.Add(-time.Hour), models.AuditionStatusPending)
	createAudition(t, db, user.ID, now.Add(2*time.Hour), models.AuditionStatusReleased)

	mailer := &fakeMailer{}
	w := NewReminderWorker(db, repositories.NewAuditionRepository(), repositories.NewUserRepository(), mailer, time.Minute)
	w.now = func() time.Time { return now }

	// 2. Act
	sent, err := w.RunOnce(context.Background())

	// 3. Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, soon.ID, mailer.sent[0].info.ID)
	assert.Equal(t, user.Email, mailer.sent[0].to)

	sent, err = w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Len(t, mailer.sent, 1)
}

func TestReminderWorker_FailedSendIsRetried(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "")
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	a := createAudition(t, db, user.ID, now.Add(5*time.Hour), models.AuditionStatusSubmitted)

	mailer := &fakeMailer{failOn: a.ID}
	w := NewReminderWorker(db, repositories.NewAuditionRepository(), repositories.NewUserRepository(), mailer, time.Minute)
	w.now = func() time.Time { return now }

	sent, err := w.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Zero(t, sent)

	var stored models.Audition
	require.NoError(t, db.First(&stored, "id = ?", a.ID).Error)
	assert.Nil(t, stored.ReminderSentAt)

	mailer.failOn = ""
	sent, err = w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), sent)
}

type fakeExpirer struct {
	calledAt time.Time
	n        int64
}

func (f *fakeExpirer) ExpireLapsed(db *gorm.DB, now time.Time) (int64, error) {
	f.calledAt = now
	return f.n, nil
}

func TestSubscriptionWorker_RunOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "")
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.RefreshToken{
		UserID:    user.ID,
		TokenHash: "expired-token-hash",
		ExpiresAt: time.Now().Add(-time.Hour),
	}).Error)

	expirer := &fakeExpirer{n: 2}
	w := NewSubscriptionWorker(db, expirer, repositories.NewRefreshTokenRepository(), time.Minute)
	w.now = func() time.Time { return now }

	expired := w.RunOnce(context.Background())

	assert.Equal(t, int64(2), expired)
	assert.Equal(t, now, expirer.calledAt)

	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubscriptionWorker_CancelsLapsedPremium(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "")
	testutil.SetTier(t, db, user.ID, models.SubscriptionTierPremiumMonthly)
	ended := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&models.Subscription{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{"end_date": ended, "auto_renew": false}).Error)

	svc := services.NewSubscriptionService(
		repositories.NewSubscriptionRepository(),
		repositories.NewUserRepository(),
		repositories.NewBookingRepository(),
		services.NewBookingService(repositories.NewBookingRepository()),
		nil,
		nil,
	)
	w := NewSubscriptionWorker(db, svc, nil, time.Minute)

	assert.Equal(t, int64(1), w.RunOnce(context.Background()))

	var sub models.Subscription
	require.NoError(t, db.First(&sub, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.SubscriptionStatusCanceled, sub.Status)
	assert.Equal(t, models.SubscriptionTierFree, sub.EffectiveTier())
}

func TestStatusNotifier(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "")
	mailer := &fakeMailer{}
	handle := NewStatusNotifier(db, repositories.NewUserRepository(), mailer)

	booked := events.NewStatusChanged(events.AuditionStatusChanged{
		AuditionID:   "a-1",
		UserID:       user.ID,
		ProjectTitle: "Summer Lights",
		RoleName:     "Young Maya",
		OldStatus:    string(models.AuditionStatusCallback),
		NewStatus:    string(models.AuditionStatusBooked),
	})
	require.NoError(t, handle(context.Background(), booked))

	released := booked
	released.Payload.NewStatus = string(models.AuditionStatusReleased)
	require.NoError(t, handle(context.Background(), released))

	gone := booked
	gone.Payload.UserID = "00000000-0000-0000-0000-000000000000"
	require.NoError(t, handle(context.Background(), gone))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "status", mailer.sent[0].kind)
	assert.Equal(t, user.Email, mailer.sent[0].to)
	assert.Equal(t, string(models.AuditionStatusBooked), mailer.sent[0].info.Status)
}
