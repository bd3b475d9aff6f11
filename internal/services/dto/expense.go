package dto

import "auditionhub_backend/internal/models"

type CreateExpenseRequest struct {
	Amount       float64                `json:"amount" validate:"required,gt=0"`
	Description  string                 `json:"description" validate:"max=500"`
	Category     models.ExpenseCategory `json:"category" validate:"required,is-expense-category"`
	Date         string                 `json:"date" validate:"required"`
	ReceiptURL   string                 `json:"receipt_url" validate:"omitempty,max=2048"`
	Reimbursable bool                   `json:"reimbursable"`
	Reimbursed   bool                   `json:"reimbursed"`
	AuditionID   *string                `json:"audition_id" validate:"omitempty,max=36"`
}

type UpdateExpenseRequest struct {
	Amount       *float64                `json:"amount" validate:"omitempty,gt=0"`
	Description  *string                 `json:"description" validate:"omitempty,max=500"`
	Category     *models.ExpenseCategory `json:"category" validate:"omitempty,is-expense-category"`
	Date         *string                 `json:"date"`
	ReceiptURL   *string                 `json:"receipt_url" validate:"omitempty,max=2048"`
	Reimbursable *bool                   `json:"reimbursable"`
	Reimbursed   *bool                   `json:"reimbursed"`
	AuditionID   *string                 `json:"audition_id" validate:"omitempty,max=36"`
}

type ExpenseListQuery struct {
	Category  string `form:"category"`
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type ExpenseSummary struct {
	Total                   float64                            `json:"total"`
	Count                   int                                `json:"count"`
	ReimbursableOutstanding float64                            `json:"reimbursable_outstanding"`
	ByCategory              map[models.ExpenseCategory]float64 `json:"by_category"`
}
