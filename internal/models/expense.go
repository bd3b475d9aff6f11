package models

import "time"

type Expense struct {
	BaseModel
	UserID       string          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Amount       float64         `gorm:"not null" json:"amount"`
	Description  string          `gorm:"size:500" json:"description"`
	Category     ExpenseCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	ReceiptURL   string          `json:"receipt_url"`
	Reimbursable bool            `gorm:"not null;default:false" json:"reimbursable"`
	Reimbursed   bool            `gorm:"not null;default:false" json:"reimbursed"`
	AuditionID   *string         `gorm:"type:varchar(36);index" json:"audition_id,omitempty"`
}

// Outstanding reports whether the expense still awaits reimbursement.
func (e *Expense) Outstanding() bool {
	return e.Reimbursable && !e.Reimbursed
}
