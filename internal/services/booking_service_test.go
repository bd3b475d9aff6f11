package services

import (
	"testing"
	"time"

	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/testutil"
	"auditionhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBooking(t *testing.T, userID string, status models.BookingStatus) *models.Booking {
	t.Helper()
	return &models.Booking{
		UserID:        userID,
		Type:          models.BookingTypeCoachingSession,
		ServiceID:     "private-coaching",
		Status:        status,
		Amount:        8500,
		PaymentStatus: models.PaymentStatusPaid,
	}
}

func TestBookingService_Catalog(t *testing.T) {
	svc := NewBookingService(repositories.NewBookingRepository())

	items := svc.ListServices()
	require.Len(t, items, 5)

	item, err := svc.FindService("self-tape-feedback")
	require.NoError(t, err)
	assert.Equal(t, int64(2200), item.Price)

	free, err := svc.FindService("bold-choices-game")
	require.NoError(t, err)
	assert.True(t, free.Free)

	_, err = svc.FindService("acting-camp")
	assert.ErrorIs(t, err, apperrors.ErrServiceNotFound)

	items[0].Price = 1
	again, _ := svc.FindService(items[0].ID)
	assert.NotEqual(t, int64(1), again.Price, "callers get a copy of the catalog")
}

func TestBookingService_UpdateAndCancel(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	repo := repositories.NewBookingRepository()
	svc := NewBookingService(repo)
	user := testutil.CreateUser(t, db, "")
	other := testutil.CreateUser(t, db, "")

	booking := createBooking(t, user.ID, models.BookingStatusScheduled)
	require.NoError(t, repo.Create(db, booking))

	start := time.Date(2026, 7, 1, 16, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// 2. Act
	updated, err := svc.UpdateBooking(db, user.ID, booking.ID, &dto.UpdateBookingRequest{
		StartTime: &start,
		EndTime:   &end,
		Notes:     ptr("bring sides"),
	})

	// 3. Assert
	require.NoError(t, err)
	assert.Equal(t, "bring sides", updated.Notes)
	assert.True(t, start.Equal(*updated.StartTime))

	before := start.Add(-time.Hour)
	_, err = svc.UpdateBooking(db, user.ID, booking.ID, &dto.UpdateBookingRequest{EndTime: &before})
	assert.Error(t, err)

	_, err = svc.CancelBooking(db, other.ID, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)

	cancelled, err := svc.CancelBooking(db, user.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	again, err := svc.CancelBooking(db, user.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, again.Status)

	list, err := svc.ListBookings(db, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "cancelled bookings stay listed")
}

func TestBookingService_CompletedCannotBeCancelled(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewBookingRepository()
	svc := NewBookingService(repo)
	user := testutil.CreateUser(t, db, "")

	booking := createBooking(t, user.ID, models.BookingStatusCompleted)
	require.NoError(t, repo.Create(db, booking))

	_, err := svc.CancelBooking(db, user.ID, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingCompleted)

	status := models.BookingStatusCancelled
	_, err = svc.UpdateBooking(db, user.ID, booking.ID, &dto.UpdateBookingRequest{Status: &status})
	assert.ErrorIs(t, err, apperrors.ErrBookingCompleted)
}
