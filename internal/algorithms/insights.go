package algorithms

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"auditionhub_backend/internal/models"
)

const (
	callbackRateBenchmark = 15.0
	bookingRateBenchmark  = 5.0

	trendMonths  = 6
	recentMonths = 3
)

type Insight struct {
	Type        models.InsightType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type Trends struct {
	Monthly     []MonthlyCount `json:"monthly"`
	Improvement float64        `json:"improvement"`
}

// GenerateInsights builds the performance and casting-trend notes shown on the analytics page.
func GenerateInsights(auditions []models.Audition) []Insight {
	if len(auditions) == 0 {
		return []Insight{}
	}

	callback := CallbackRate(auditions)
	booking := BookingRate(auditions)

	callbackText := fmt.Sprintf("Your callback rate is %.1f%%, ", callback)
	if callback > callbackRateBenchmark {
		callbackText += "which is above industry average."
	} else {
		callbackText += "consider focusing on audition preparation."
	}

	bookingText := fmt.Sprintf("Your booking rate is %.1f%%. ", booking)
	if booking > bookingRateBenchmark {
		bookingText += "Great job!"
	} else {
		bookingText += "Consider working with a coach to improve callback to booking conversion."
	}

	insights := []Insight{
		{Type: models.InsightTypePerformance, Title: "Callback Performance", Description: callbackText},
		{Type: models.InsightTypePerformance, Title: "Booking Success", Description: bookingText},
	}

	if t, ok := MostCommonType(auditions); ok {
		insights = append(insights, Insight{
			Type:  models.InsightTypeCastingTrends,
			Title: "Audition Type Trends",
			Description: fmt.Sprintf(
				"You're most frequently auditioning for %s roles. Consider diversifying your audition types to expand opportunities.",
				strings.ToLower(string(t)),
			),
		})
	}
	return insights
}

// MostCommonType breaks ties by the enum order.
func MostCommonType(auditions []models.Audition) (models.AuditionType, bool) {
	if len(auditions) == 0 {
		return "", false
	}
	counts := make(map[models.AuditionType]int)
	for _, a := range auditions {
		counts[a.Type]++
	}
	var best models.AuditionType
	bestCount := 0
	for _, t := range models.AuditionTypes {
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best, bestCount > 0
}

// AnalyzeTrends counts dated auditions per month for the last six months and
// compares the success rate of the last three months with the three before.
// Auditions dated before the window are ignored.
func AnalyzeTrends(auditions []models.Audition, now time.Time) Trends {
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	windowStart := firstOfMonth.AddDate(0, -(trendMonths - 1), 0)
	windowEnd := firstOfMonth.AddDate(0, 1, 0)
	recentCutoff := now.AddDate(0, -recentMonths, 0)

	buckets := make(map[string]int, trendMonths)
	var recent, older []models.Audition
	for _, a := range auditions {
		if a.AuditionDate == nil {
			continue
		}
		d := a.AuditionDate.UTC()
		if d.Before(windowStart) {
			continue
		}
		if d.Before(windowEnd) {
			buckets[d.Format("2006-01")]++
		}
		if !d.Before(recentCutoff) {
			recent = append(recent, a)
		} else {
			older = append(older, a)
		}
	}

	monthly := make([]MonthlyCount, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		key := windowStart.AddDate(0, i, 0).Format("2006-01")
		monthly = append(monthly, MonthlyCount{Month: key, Count: buckets[key]})
	}
	sort.SliceStable(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	return Trends{
		Monthly:     monthly,
		Improvement: Improvement(SuccessRate(recent), SuccessRate(older)),
	}
}

// Improvement is the relative change from older to recent, 0 when there is no baseline.
func Improvement(recent, older float64) float64 {
	if older == 0 {
		return 0
	}
	return (recent - older) / older * 100
}

// CountByMonthOfYear returns twelve buckets (Jan..Dec) for the given year.
// An audition is placed by its audition date, or by creation when undated.
func CountByMonthOfYear(auditions []models.Audition, year int) []MonthlyCount {
	counts := make([]int, 12)
	for _, a := range auditions {
		at := a.CreatedAt
		if a.AuditionDate != nil {
			at = *a.AuditionDate
		}
		at = at.UTC()
		if at.Year() == year {
			counts[at.Month()-1]++
		}
	}

	out := make([]MonthlyCount, 12)
	for i := range out {
		out[i] = MonthlyCount{
			Month: time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Count: counts[i],
		}
	}
	return out
}
