package algorithms

import "auditionhub_backend/internal/models"

// Rate returns count/total as a percentage, or 0 when total is 0.
func Rate(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func CountByStatus(auditions []models.Audition) map[models.AuditionStatus]int {
	counts := make(map[models.AuditionStatus]int, len(models.AuditionStatuses))
	for _, s := range models.AuditionStatuses {
		counts[s] = 0
	}
	for _, a := range auditions {
		counts[a.Status]++
	}
	return counts
}

func CallbackRate(auditions []models.Audition) float64 {
	return Rate(CountByStatus(auditions)[models.AuditionStatusCallback], len(auditions))
}

func BookingRate(auditions []models.Audition) float64 {
	return Rate(CountByStatus(auditions)[models.AuditionStatusBooked], len(auditions))
}

// SuccessRate counts callbacks and bookings together.
func SuccessRate(auditions []models.Audition) float64 {
	c := CountByStatus(auditions)
	return Rate(c[models.AuditionStatusCallback]+c[models.AuditionStatusBooked], len(auditions))
}
