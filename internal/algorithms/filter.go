package algorithms

import (
	"strings"
	"time"

	"auditionhub_backend/internal/models"
)

const (
	TabUpcoming = "upcoming"
	TabPast     = "past"

	// FilterAll disables the status or type filter.
	FilterAll = "ALL"
)

// AuditionFilter describes the list query. Zero values match everything.
type AuditionFilter struct {
	Search  string
	Status  string
	Type    string
	Tab     string
	ActorID string
}

// Matches applies every filter to a single audition at the given instant.
func (f AuditionFilter) Matches(a models.Audition, now time.Time) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(a.ProjectTitle), q) &&
			!strings.Contains(strings.ToLower(a.RoleName), q) {
			return false
		}
	}
	if f.Status != "" && !strings.EqualFold(f.Status, FilterAll) && !strings.EqualFold(f.Status, string(a.Status)) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(f.Type, FilterAll) && !strings.EqualFold(f.Type, string(a.Type)) {
		return false
	}
	if f.ActorID != "" && (a.ActorID == nil || *a.ActorID != f.ActorID) {
		return false
	}

	switch strings.ToLower(f.Tab) {
	case TabUpcoming:
		return IsUpcoming(a, now)
	case TabPast:
		return IsPast(a, now)
	}
	return true
}

// IsUpcoming: dated in the future and still in play.
func IsUpcoming(a models.Audition, now time.Time) bool {
	return a.AuditionDate != nil && a.AuditionDate.After(now) && a.Status.Active()
}

// IsPast: dated at or before now, or already closed.
func IsPast(a models.Audition, now time.Time) bool {
	if a.Status.Closed() {
		return true
	}
	return a.AuditionDate != nil && !a.AuditionDate.After(now)
}

// FilterAuditions returns the subset matching f, preserving input order.
func FilterAuditions(auditions []models.Audition, f AuditionFilter, now time.Time) []models.Audition {
	out := make([]models.Audition, 0, len(auditions))
	for _, a := range auditions {
		if f.Matches(a, now) {
			out = append(out, a)
		}
	}
	return out
}
