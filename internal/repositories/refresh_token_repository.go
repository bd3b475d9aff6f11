package repositories

import (
	"time"

	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

// RefreshTokenRepository works with token hashes only; raw tokens never reach the database.
type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error
	FindByHash(db *gorm.DB, hash string) (*models.RefreshToken, error)
	Revoke(db *gorm.DB, id string) error
	RevokeAllForUser(db *gorm.DB, userID string) error
	CleanExpired(db *gorm.DB) (int64, error)
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindByHash(db *gorm.DB, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Where("token_hash = ?", hash).First(&token).Error; err != nil {
		return nil, notFound(err, ErrRefreshTokenNotFound)
	}
	return &token, nil
}

func (r *refreshTokenRepository) Revoke(db *gorm.DB, id string) error {
	result := db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now().UTC())
	return mustAffect(result, ErrRefreshTokenNotFound)
}

func (r *refreshTokenRepository) RevokeAllForUser(db *gorm.DB, userID string) error {
	return db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now().UTC()).Error
}

func (r *refreshTokenRepository) CleanExpired(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now().UTC()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
