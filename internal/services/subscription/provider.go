package subscription

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidSignature is returned by ParseWebhook when the payload was not signed
// with the configured secret.
var ErrInvalidSignature = errors.New("webhook signature verification failed")

const (
	KindSubscription = "subscription"
	KindService      = "service"
)

// Webhook event types the service reacts to. Anything else is acknowledged and ignored.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// CheckoutRequest describes one hosted checkout session.
// Subscription checkouts reference a provider price id, service checkouts carry an inline amount.
type CheckoutRequest struct {
	Kind          string
	CustomerEmail string
	CustomerID    string
	PriceID       string
	Amount        int64 // cents
	Name          string
	Description   string
	Metadata      map[string]string
}

type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

// WebhookEvent is the provider-neutral view of a webhook delivery.
type WebhookEvent struct {
	ID   string
	Type string

	// checkout.session.completed
	SessionID       string
	Mode            string // subscription or payment
	PaymentIntentID string

	// customer.subscription.*
	SubscriptionStatus string
	CurrentPeriodEnd   *time.Time
	CancelAtPeriodEnd  bool

	CustomerID     string
	SubscriptionID string
	Metadata       map[string]string
}

// PaymentProvider is the payments boundary used by the subscription and booking flows.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
