package repositories

import (
	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

type UploadRepository interface {
	Create(db *gorm.DB, upload *models.Upload) error
	FindByID(db *gorm.DB, userID, id string) (*models.Upload, error)
	FindByEntity(db *gorm.DB, entityType, entityID string) ([]models.Upload, error)
	Delete(db *gorm.DB, userID, id string) error
}

type uploadRepository struct{}

func NewUploadRepository() UploadRepository {
	return &uploadRepository{}
}

func (r *uploadRepository) Create(db *gorm.DB, upload *models.Upload) error {
	return db.Create(upload).Error
}

func (r *uploadRepository) FindByID(db *gorm.DB, userID, id string) (*models.Upload, error) {
	var upload models.Upload
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&upload).Error; err != nil {
		return nil, notFound(err, ErrUploadNotFound)
	}
	return &upload, nil
}

func (r *uploadRepository) FindByEntity(db *gorm.DB, entityType, entityID string) ([]models.Upload, error) {
	var uploads []models.Upload
	err := db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *uploadRepository) Delete(db *gorm.DB, userID, id string) error {
	return mustAffect(db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Upload{}), ErrUploadNotFound)
}
