package repositories

import (
	"time"

	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

type AuditionRepository interface {
	Create(db *gorm.DB, audition *models.Audition) error
	CreateBatch(db *gorm.DB, auditions []models.Audition) error
	FindByID(db *gorm.DB, userID, id string) (*models.Audition, error)
	ListByUser(db *gorm.DB, userID string) ([]models.Audition, error)
	ListInRange(db *gorm.DB, userID string, from, to time.Time) ([]models.Audition, error)
	Recent(db *gorm.DB, userID string, limit int) ([]models.Audition, error)
	Update(db *gorm.DB, audition *models.Audition) error
	UpdateStatus(db *gorm.DB, userID, id string, status models.AuditionStatus) error
	Delete(db *gorm.DB, userID, id string) error
	CountCreatedSince(db *gorm.DB, userID string, source models.AuditionSource, since time.Time) (int64, error)

	// Reminder worker
	FindDueForReminder(db *gorm.DB, from, to time.Time) ([]models.Audition, error)
	MarkReminderSent(db *gorm.DB, id string, at time.Time) error
}

type auditionRepository struct{}

func NewAuditionRepository() AuditionRepository {
	return &auditionRepository{}
}

func (r *auditionRepository) Create(db *gorm.DB, audition *models.Audition) error {
	return db.Omit("Actor").Create(audition).Error
}

func (r *auditionRepository) CreateBatch(db *gorm.DB, auditions []models.Audition) error {
	if len(auditions) == 0 {
		return nil
	}
	return db.Omit("Actor").CreateInBatches(&auditions, 100).Error
}

func (r *auditionRepository) FindByID(db *gorm.DB, userID, id string) (*models.Audition, error) {
	var audition models.Audition
	err := db.Preload("Actor").
		Where("id = ? AND user_id = ?", id, userID).
		First(&audition).Error
	if err != nil {
		return nil, notFound(err, ErrAuditionNotFound)
	}
	return &audition, nil
}

// ListByUser returns every audition of the user, newest first. Filtering happens in memory.
func (r *auditionRepository) ListByUser(db *gorm.DB, userID string) ([]models.Audition, error) {
	var auditions []models.Audition
	err := db.Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&auditions).Error
	return auditions, err
}

// ListInRange matches on either the audition date or the callback date.
func (r *auditionRepository) ListInRange(db *gorm.DB, userID string, from, to time.Time) ([]models.Audition, error) {
	var auditions []models.Audition
	err := db.Where("user_id = ?", userID).
		Where("(audition_date >= ? AND audition_date <= ?) OR (callback_date >= ? AND callback_date <= ?)",
			from, to, from, to).
		Order("audition_date ASC").
		Find(&auditions).Error
	return auditions, err
}

func (r *auditionRepository) Recent(db *gorm.DB, userID string, limit int) ([]models.Audition, error) {
	var auditions []models.Audition
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&auditions).Error
	return auditions, err
}

func (r *auditionRepository) Update(db *gorm.DB, audition *models.Audition) error {
	return db.Omit("Actor").Save(audition).Error
}

func (r *auditionRepository) UpdateStatus(db *gorm.DB, userID, id string, status models.AuditionStatus) error {
	result := db.Model(&models.Audition{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	return mustAffect(result, ErrAuditionNotFound)
}

func (r *auditionRepository) Delete(db *gorm.DB, userID, id string) error {
	return mustAffect(db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Audition{}), ErrAuditionNotFound)
}

func (r *auditionRepository) CountCreatedSince(db *gorm.DB, userID string, source models.AuditionSource, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Audition{}).
		Where("user_id = ? AND source = ? AND created_at >= ?", userID, source, since).
		Count(&count).Error
	return count, err
}

func (r *auditionRepository) FindDueForReminder(db *gorm.DB, from, to time.Time) ([]models.Audition, error) {
	var auditions []models.Audition
	err := db.Where("reminder_sent_at IS NULL").
		Where("audition_date > ? AND audition_date <= ?", from, to).
		Where("status IN ?", []models.AuditionStatus{
			models.AuditionStatusPending,
			models.AuditionStatusSubmitted,
			models.AuditionStatusCallback,
		}).
		Order("audition_date ASC").
		Find(&auditions).Error
	return auditions, err
}

func (r *auditionRepository) MarkReminderSent(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.Audition{}).Where("id = ?", id).Update("reminder_sent_at", at).Error
}
