package models

import (
	"time"
)

type Subscription struct {
	BaseModel
	UserID               string             `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Tier                 SubscriptionTier   `gorm:"type:varchar(20);not null;default:'FREE'" json:"tier"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	StartDate            time.Time          `json:"start_date"`
	EndDate              *time.Time         `json:"end_date,omitempty"`
	AutoRenew            bool               `gorm:"not null;default:false" json:"auto_renew"`
	StripeCustomerID     string             `gorm:"size:255" json:"-"`
	StripeSubscriptionID string             `gorm:"size:255;index" json:"-"`
}

// EffectiveTier is the tier whose limits apply right now.
func (s *Subscription) EffectiveTier() SubscriptionTier {
	if s == nil || s.Status != SubscriptionStatusActive {
		return SubscriptionTierFree
	}
	return s.Tier
}

// PaymentTransaction records one checkout session from creation to settlement.
type PaymentTransaction struct {
	BaseModel
	UserID          string           `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Kind            string           `gorm:"size:20;not null" json:"kind"` // subscription, service
	Tier            SubscriptionTier `gorm:"type:varchar(20)" json:"tier,omitempty"`
	BookingID       *string          `gorm:"type:varchar(36)" json:"booking_id,omitempty"`
	Amount          int64            `json:"amount"` // cents
	Status          PaymentStatus    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	StripeSessionID string           `gorm:"size:255;uniqueIndex" json:"-"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
}
