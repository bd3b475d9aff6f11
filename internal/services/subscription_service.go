package services

import (
	"context"
	"errors"
	"time"

	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/metrics"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/services/subscription"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SubscriptionService interface {
	Pricing() []subscription.Plan
	GetSubscription(db *gorm.DB, userID string) (*dto.SubscriptionResponse, error)
	Checkout(ctx context.Context, db *gorm.DB, userID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	CancelSubscription(ctx context.Context, db *gorm.DB, userID string) (*dto.SubscriptionResponse, error)
	HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string) error
	ExpireLapsed(db *gorm.DB, now time.Time) (int64, error)
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	bookingRepo      repositories.BookingRepository
	bookings         BookingService
	provider         subscription.PaymentProvider
	plans            []subscription.Plan
}

// NewSubscriptionService accepts a nil provider; checkout, cancel and webhooks
// then answer 503.
func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	bookingRepo repositories.BookingRepository,
	bookings BookingService,
	provider subscription.PaymentProvider,
	plans []subscription.Plan,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		bookingRepo:      bookingRepo,
		bookings:         bookings,
		provider:         provider,
		plans:            plans,
	}
}

func (s *SubscriptionServiceImpl) Pricing() []subscription.Plan {
	out := make([]subscription.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *SubscriptionServiceImpl) GetSubscription(db *gorm.DB, userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, repoErr(err)
	}
	return subscriptionResponse(sub), nil
}

func (s *SubscriptionServiceImpl) Checkout(ctx context.Context, db *gorm.DB, userID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if s.provider == nil {
		return nil, apperrors.ErrPaymentsDisabled
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, repoErr(err)
	}

	switch req.Kind {
	case subscription.KindSubscription:
		return s.subscriptionCheckout(ctx, db, user, req.Tier)
	case subscription.KindService:
		return s.serviceCheckout(ctx, db, user, req.ServiceID)
	}
	return nil, apperrors.NewBadRequestError("kind must be 'subscription' or 'service'")
}

func (s *SubscriptionServiceImpl) subscriptionCheckout(ctx context.Context, db *gorm.DB, user *models.User, tier models.SubscriptionTier) (*dto.CheckoutResponse, error) {
	if tier == "" {
		return nil, apperrors.ValidationError(map[string]string{"tier": "This field is required"})
	}
	if tier == models.SubscriptionTierFree {
		return nil, apperrors.ErrFreeTierCheckout
	}
	plan, ok := subscription.FindPlan(s.plans, tier)
	if !ok {
		return nil, apperrors.NewBadRequestError("Unknown subscription tier")
	}
	if plan.PriceID == "" {
		return nil, apperrors.ErrPaymentsDisabled.WithDetails("no price configured for " + string(tier))
	}

	session, err := s.provider.CreateCheckout(ctx, subscription.CheckoutRequest{
		Kind:          subscription.KindSubscription,
		CustomerEmail: user.Email,
		CustomerID:    user.StripeCustomerID,
		PriceID:       plan.PriceID,
		Metadata: map[string]string{
			"user_id": user.ID,
			"tier":    string(tier),
			"kind":    subscription.KindSubscription,
		},
	})
	if err != nil {
		return nil, apperrors.ExternalServiceError(err, "payment", "Failed to create checkout session")
	}

	txn := &models.PaymentTransaction{
		UserID:          user.ID,
		Kind:            subscription.KindSubscription,
		Tier:            tier,
		Amount:          plan.Price,
		Status:          models.PaymentStatusPending,
		StripeSessionID: session.ID,
	}
	if err := s.subscriptionRepo.CreateTransaction(db, txn); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "subscription checkout created", "user_id", user.ID, "tier", tier, "session_id", session.ID)
	return &dto.CheckoutResponse{SessionID: session.ID, URL: session.URL}, nil
}

// serviceCheckout books the service with payment PENDING and opens a one-off checkout for it.
func (s *SubscriptionServiceImpl) serviceCheckout(ctx context.Context, db *gorm.DB, user *models.User, serviceID string) (*dto.CheckoutResponse, error) {
	if serviceID == "" {
		return nil, apperrors.ValidationError(map[string]string{"service_id": "This field is required"})
	}
	item, err := s.bookings.FindService(serviceID)
	if err != nil {
		return nil, err
	}
	if item.Free || item.Price == 0 {
		return nil, apperrors.ErrServiceIsFree
	}

	var resp *dto.CheckoutResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		booking := &models.Booking{
			UserID:        user.ID,
			Type:          item.BookingType,
			ServiceID:     item.ID,
			Status:        models.BookingStatusScheduled,
			Amount:        item.Price,
			PaymentStatus: models.PaymentStatusPending,
		}
		if err := s.bookingRepo.Create(tx, booking); err != nil {
			return apperrors.DatabaseError(err)
		}

		session, err := s.provider.CreateCheckout(ctx, subscription.CheckoutRequest{
			Kind:          subscription.KindService,
			CustomerEmail: user.Email,
			CustomerID:    user.StripeCustomerID,
			Amount:        item.Price,
			Name:          item.Name,
			Description:   item.Description,
			Metadata: map[string]string{
				"user_id":    user.ID,
				"booking_id": booking.ID,
				"service_id": item.ID,
				"kind":       subscription.KindService,
			},
		})
		if err != nil {
			return apperrors.ExternalServiceError(err, "payment", "Failed to create checkout session")
		}

		booking.StripeSessionID = session.ID
		if err := s.bookingRepo.Update(tx, booking); err != nil {
			return apperrors.DatabaseError(err)
		}

		bookingID := booking.ID
		txn := &models.PaymentTransaction{
			UserID:          user.ID,
			Kind:            subscription.KindService,
			BookingID:       &bookingID,
			Amount:          item.Price,
			Status:          models.PaymentStatusPending,
			StripeSessionID: session.ID,
		}
		if err := s.subscriptionRepo.CreateTransaction(tx, txn); err != nil {
			return apperrors.DatabaseError(err)
		}

		resp = &dto.CheckoutResponse{SessionID: session.ID, URL: session.URL, BookingID: &bookingID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *SubscriptionServiceImpl) CancelSubscription(ctx context.Context, db *gorm.DB, userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, repoErr(err)
	}
	if sub.Tier == models.SubscriptionTierFree || sub.StripeSubscriptionID == "" {
		return nil, apperrors.ErrNoPaidSubscription
	}
	if s.provider == nil {
		return nil, apperrors.ErrPaymentsDisabled
	}

	if err := s.provider.CancelAtPeriodEnd(ctx, sub.StripeSubscriptionID); err != nil {
		return nil, apperrors.ExternalServiceError(err, "payment", "Failed to cancel subscription")
	}

	sub.AutoRenew = false
	if err := s.subscriptionRepo.Update(db, sub); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "subscription set to cancel at period end", "user_id", userID)
	return subscriptionResponse(sub), nil
}

func (s *SubscriptionServiceImpl) HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string) error {
	if s.provider == nil {
		return apperrors.ErrPaymentsDisabled
	}

	evt, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, subscription.ErrInvalidSignature) {
			return apperrors.ErrWebhookSignature.WithError(err)
		}
		return apperrors.NewBadRequestError("Malformed webhook payload")
	}
	metrics.PaymentEvent(evt.Type)

	switch evt.Type {
	case subscription.EventCheckoutCompleted:
		if evt.Mode == "payment" {
			return s.completeServicePayment(ctx, db, evt)
		}
		return s.activateSubscription(ctx, db, evt)
	case subscription.EventSubscriptionUpdated:
		return s.syncSubscription(ctx, db, evt, false)
	case subscription.EventSubscriptionDeleted:
		return s.syncSubscription(ctx, db, evt, true)
	}

	logger.CtxDebug(ctx, "ignoring webhook event", "type", evt.Type)
	return nil
}

func (s *SubscriptionServiceImpl) activateSubscription(ctx context.Context, db *gorm.DB, evt *subscription.WebhookEvent) error {
	userID := evt.Metadata["user_id"]
	tier := models.SubscriptionTier(evt.Metadata["tier"])
	if userID == "" || !tier.Paid() {
		logger.CtxWarn(ctx, "checkout completed without usable metadata", "session_id", evt.SessionID)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		sub, err := s.subscriptionRepo.FindByUserID(tx, userID)
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			sub = &models.Subscription{UserID: userID}
		} else if err != nil {
			return apperrors.DatabaseError(err)
		}

		sub.Tier = tier
		sub.Status = models.SubscriptionStatusActive
		sub.StartDate = time.Now().UTC()
		sub.EndDate = nil
		sub.AutoRenew = true
		sub.StripeCustomerID = evt.CustomerID
		sub.StripeSubscriptionID = evt.SubscriptionID

		if sub.ID == "" {
			err = s.subscriptionRepo.Create(tx, sub)
		} else {
			err = s.subscriptionRepo.Update(tx, sub)
		}
		if err != nil {
			return apperrors.DatabaseError(err)
		}

		if evt.CustomerID != "" {
			if user, err := s.userRepo.FindByID(tx, userID); err == nil && user.StripeCustomerID != evt.CustomerID {
				user.StripeCustomerID = evt.CustomerID
				if err := s.userRepo.Update(tx, user); err != nil {
					return apperrors.DatabaseError(err)
				}
			}
		}

		logger.CtxInfo(ctx, "subscription activated", "user_id", userID, "tier", tier)
		return s.markTransactionPaid(tx, evt.SessionID)
	})
}

func (s *SubscriptionServiceImpl) completeServicePayment(ctx context.Context, db *gorm.DB, evt *subscription.WebhookEvent) error {
	bookingID := evt.Metadata["booking_id"]
	if bookingID == "" {
		logger.CtxWarn(ctx, "payment completed without booking id", "session_id", evt.SessionID)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDUnscoped(tx, bookingID)
		if errors.Is(err, repositories.ErrBookingNotFound) {
			logger.CtxWarn(ctx, "payment completed for unknown booking", "booking_id", bookingID)
			return nil
		}
		if err != nil {
			return apperrors.DatabaseError(err)
		}

		booking.PaymentStatus = models.PaymentStatusPaid
		booking.StripePaymentID = evt.PaymentIntentID
		if err := s.bookingRepo.Update(tx, booking); err != nil {
			return apperrors.DatabaseError(err)
		}
		return s.markTransactionPaid(tx, evt.SessionID)
	})
}

// syncSubscription mirrors the provider's status, period end and renewal flag.
func (s *SubscriptionServiceImpl) syncSubscription(ctx context.Context, db *gorm.DB, evt *subscription.WebhookEvent, deleted bool) error {
	sub, err := s.subscriptionRepo.FindByStripeSubscriptionID(db, evt.SubscriptionID)
	if errors.Is(err, repositories.ErrSubscriptionNotFound) && evt.Metadata["user_id"] != "" {
		sub, err = s.subscriptionRepo.FindByUserID(db, evt.Metadata["user_id"])
	}
	if errors.Is(err, repositories.ErrSubscriptionNotFound) {
		logger.CtxWarn(ctx, "webhook for unknown subscription", "subscription_id", evt.SubscriptionID)
		return nil
	}
	if err != nil {
		return apperrors.DatabaseError(err)
	}

	if deleted {
		sub.Status = models.SubscriptionStatusCanceled
		sub.AutoRenew = false
		if sub.EndDate == nil {
			now := time.Now().UTC()
			sub.EndDate = &now
		}
	} else {
		sub.Status = subscription.StatusFromProvider(evt.SubscriptionStatus, sub.Status)
		sub.AutoRenew = !evt.CancelAtPeriodEnd
		if evt.CurrentPeriodEnd != nil {
			sub.EndDate = evt.CurrentPeriodEnd
		}
	}

	if err := s.subscriptionRepo.Update(db, sub); err != nil {
		return apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "subscription synced", "user_id", sub.UserID, "status", sub.Status)
	return nil
}

func (s *SubscriptionServiceImpl) markTransactionPaid(db *gorm.DB, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	txn, err := s.subscriptionRepo.FindTransactionBySession(db, sessionID)
	if errors.Is(err, repositories.ErrPaymentNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if txn.Status == models.PaymentStatusPaid {
		return nil
	}
	now := time.Now().UTC()
	txn.Status = models.PaymentStatusPaid
	txn.PaidAt = &now
	return repoErr(s.subscriptionRepo.UpdateTransaction(db, txn))
}

func (s *SubscriptionServiceImpl) ExpireLapsed(db *gorm.DB, now time.Time) (int64, error) {
	return s.subscriptionRepo.ExpireLapsed(db, now)
}

func subscriptionResponse(sub *models.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		Tier:          sub.Tier,
		EffectiveTier: sub.EffectiveTier(),
		Status:        sub.Status,
		StartDate:     sub.StartDate,
		EndDate:       sub.EndDate,
		AutoRenew:     sub.AutoRenew,
	}
}
