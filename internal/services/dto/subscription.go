package dto

import (
	"time"

	"auditionhub_backend/internal/models"
)

type SubscriptionResponse struct {
	Tier          models.SubscriptionTier   `json:"tier"`
	EffectiveTier models.SubscriptionTier   `json:"effective_tier"`
	Status        models.SubscriptionStatus `json:"status"`
	StartDate     time.Time                 `json:"start_date"`
	EndDate       *time.Time                `json:"end_date,omitempty"`
	AutoRenew     bool                      `json:"auto_renew"`
}

type CheckoutRequest struct {
	Kind      string                  `json:"kind" validate:"required,oneof=subscription service"`
	Tier      models.SubscriptionTier `json:"tier" validate:"omitempty,is-subscription-tier"`
	ServiceID string                  `json:"service_id" validate:"required_if=Kind service,max=64"`
}

type CheckoutResponse struct {
	SessionID string  `json:"session_id"`
	URL       string  `json:"url"`
	BookingID *string `json:"booking_id,omitempty"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}
