package repositories

import (
	"time"

	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(db *gorm.DB, sub *models.Subscription) error
	FindByUserID(db *gorm.DB, userID string) (*models.Subscription, error)
	FindByStripeSubscriptionID(db *gorm.DB, stripeID string) (*models.Subscription, error)
	Update(db *gorm.DB, sub *models.Subscription) error
	ExpireLapsed(db *gorm.DB, now time.Time) (int64, error)

	// Payment transactions
	CreateTransaction(db *gorm.DB, tx *models.PaymentTransaction) error
	FindTransactionBySession(db *gorm.DB, sessionID string) (*models.PaymentTransaction, error)
	UpdateTransaction(db *gorm.DB, tx *models.PaymentTransaction) error
}

type subscriptionRepository struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &subscriptionRepository{}
}

func (r *subscriptionRepository) Create(db *gorm.DB, sub *models.Subscription) error {
	return db.Create(sub).Error
}

func (r *subscriptionRepository) FindByUserID(db *gorm.DB, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, notFound(err, ErrSubscriptionNotFound)
	}
	return &sub, nil
}

func (r *subscriptionRepository) FindByStripeSubscriptionID(db *gorm.DB, stripeID string) (*models.Subscription, error) {
	if stripeID == "" {
		return nil, ErrSubscriptionNotFound
	}
	var sub models.Subscription
	if err := db.Where("stripe_subscription_id = ?", stripeID).First(&sub).Error; err != nil {
		return nil, notFound(err, ErrSubscriptionNotFound)
	}
	return &sub, nil
}

func (r *subscriptionRepository) Update(db *gorm.DB, sub *models.Subscription) error {
	return db.Save(sub).Error
}

// ExpireLapsed cancels paid subscriptions past their end date that will not renew.
func (r *subscriptionRepository) ExpireLapsed(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Subscription{}).
		Where("tier <> ? AND status = ?", models.SubscriptionTierFree, models.SubscriptionStatusActive).
		Where("auto_renew = ? AND end_date IS NOT NULL AND end_date < ?", false, now).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionStatusCanceled,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *subscriptionRepository) CreateTransaction(db *gorm.DB, tx *models.PaymentTransaction) error {
	return db.Create(tx).Error
}

func (r *subscriptionRepository) FindTransactionBySession(db *gorm.DB, sessionID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	if err := db.Where("stripe_session_id = ?", sessionID).First(&tx).Error; err != nil {
		return nil, notFound(err, ErrPaymentNotFound)
	}
	return &tx, nil
}

func (r *subscriptionRepository) UpdateTransaction(db *gorm.DB, tx *models.PaymentTransaction) error {
	return db.Save(tx).Error
}
