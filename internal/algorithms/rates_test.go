package algorithms

import (
	"testing"

	"auditionhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func withStatuses(statuses ...models.AuditionStatus) []models.Audition {
	out := make([]models.Audition, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, models.Audition{Status: s, Type: models.AuditionTypeTV})
	}
	return out
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, 0))
	assert.Equal(t, 0.0, Rate(3, 0))
	assert.Equal(t, 25.0, Rate(1, 4))
	assert.Equal(t, 100.0, Rate(2, 2))
	assert.InDelta(t, 33.333, Rate(1, 3), 0.001)
}

func TestCallbackAndBookingRates(t *testing.T) {
	auditions := withStatuses(
		models.AuditionStatusCallback,
		models.AuditionStatusCallback,
		models.AuditionStatusBooked,
		models.AuditionStatusPending,
		models.AuditionStatusReleased,
	)

	assert.Equal(t, 40.0, CallbackRate(auditions))
	assert.Equal(t, 20.0, BookingRate(auditions))
	assert.Equal(t, 60.0, SuccessRate(auditions))
}

func TestRates_Empty(t *testing.T) {
	assert.Zero(t, CallbackRate(nil))
	assert.Zero(t, BookingRate(nil))
	assert.Zero(t, SuccessRate(nil))
}

func TestCountByStatus_IncludesZeroes(t *testing.T) {
	counts := CountByStatus(withStatuses(models.AuditionStatusBooked))

	assert.Len(t, counts, len(models.AuditionStatuses))
	assert.Equal(t, 1, counts[models.AuditionStatusBooked])
	assert.Equal(t, 0, counts[models.AuditionStatusPending])
}
