package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrRefreshTokenNotFound  = errors.New("refresh token not found")
	ErrActorNotFound         = errors.New("actor not found")
	ErrAuditionNotFound      = errors.New("audition not found")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrContactNotFound       = errors.New("contact not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrPaymentNotFound       = errors.New("payment transaction not found")
	ErrEmailSettingsNotFound = errors.New("email settings not found")
	ErrUploadNotFound        = errors.New("upload not found")
)

// notFound swaps gorm.ErrRecordNotFound for the repository's own sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// mustAffect reports a missing row when a scoped write touched nothing.
func mustAffect(result *gorm.DB, sentinel error) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return sentinel
	}
	return nil
}
