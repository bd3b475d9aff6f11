package repositories

import (
	"strings"

	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

type EmailRepository interface {
	// Settings
	CreateSettings(db *gorm.DB, settings *models.EmailSettings) error
	FindSettingsByUserID(db *gorm.DB, userID string) (*models.EmailSettings, error)
	FindSettingsByAddress(db *gorm.DB, address string) (*models.EmailSettings, error)
	UpdateSettings(db *gorm.DB, settings *models.EmailSettings) error

	// Logs
	CreateLog(db *gorm.DB, log *models.EmailLog) error
	UpdateLog(db *gorm.DB, log *models.EmailLog) error
	ListLogs(db *gorm.DB, userID string, limit, offset int) ([]models.EmailLog, int64, error)
}

type emailRepository struct{}

func NewEmailRepository() EmailRepository {
	return &emailRepository{}
}

func (r *emailRepository) CreateSettings(db *gorm.DB, settings *models.EmailSettings) error {
	settings.ForwardingAddress = strings.ToLower(settings.ForwardingAddress)
	return db.Create(settings).Error
}

func (r *emailRepository) FindSettingsByUserID(db *gorm.DB, userID string) (*models.EmailSettings, error) {
	var settings models.EmailSettings
	if err := db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, notFound(err, ErrEmailSettingsNotFound)
	}
	return &settings, nil
}

func (r *emailRepository) FindSettingsByAddress(db *gorm.DB, address string) (*models.EmailSettings, error) {
	var settings models.EmailSettings
	err := db.Where("forwarding_address = ?", strings.ToLower(strings.TrimSpace(address))).
		First(&settings).Error
	if err != nil {
		return nil, notFound(err, ErrEmailSettingsNotFound)
	}
	return &settings, nil
}

func (r *emailRepository) UpdateSettings(db *gorm.DB, settings *models.EmailSettings) error {
	return db.Save(settings).Error
}

func (r *emailRepository) CreateLog(db *gorm.DB, log *models.EmailLog) error {
	return db.Create(log).Error
}

func (r *emailRepository) UpdateLog(db *gorm.DB, log *models.EmailLog) error {
	return db.Save(log).Error
}

func (r *emailRepository) ListLogs(db *gorm.DB, userID string, limit, offset int) ([]models.EmailLog, int64, error) {
	query := db.Model(&models.EmailLog{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.EmailLog
	err := db.Where("user_id = ?", userID).
		Order("received_at DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	return logs, total, err
}
