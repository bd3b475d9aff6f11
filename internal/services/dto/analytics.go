package dto

import (
	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/models"
)

type Dashboard struct {
	TotalAuditions     int                                `json:"total_auditions"`
	AuditionsByStatus  map[models.AuditionStatus]int      `json:"auditions_by_status"`
	UpcomingAuditions  []models.Audition                  `json:"upcoming_auditions"`
	CallbackRate       float64                            `json:"callback_rate"`
	BookingRate        float64                            `json:"booking_rate"`
	ActiveActors       int64                              `json:"active_actors"`
	TotalExpenses      float64                            `json:"total_expenses"`
	ReimbursableOwed   float64                            `json:"reimbursable_outstanding"`
	ExpensesByCategory map[models.ExpenseCategory]float64 `json:"expenses_by_category"`
	RecentExpenses     []models.Expense                   `json:"recent_expenses"`
	AuditionsByMonth   []algorithms.MonthlyCount          `json:"auditions_by_month"`
}

type Analytics struct {
	Insights       []algorithms.Insight `json:"insights"`
	Trends         algorithms.Trends    `json:"trends"`
	SuccessRate    float64              `json:"success_rate"`
	RecentActivity []models.Audition    `json:"recent_activity"`
}
