package models

import "time"

type Booking struct {
	BaseModel
	UserID          string        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Type            BookingType   `gorm:"type:varchar(30);not null" json:"type"`
	ServiceID       string        `gorm:"size:64" json:"service_id"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED'" json:"status"`
	StartTime       *time.Time    `json:"start_time,omitempty"`
	EndTime         *time.Time    `json:"end_time,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes"`
	Amount          int64         `gorm:"not null;default:0" json:"amount"` // cents
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	StripeSessionID string        `gorm:"size:255;index" json:"-"`
	StripePaymentID string        `gorm:"size:255" json:"-"`
}
