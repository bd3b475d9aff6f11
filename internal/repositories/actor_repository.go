package repositories

import (
	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

type ActorRepository interface {
	Create(db *gorm.DB, actor *models.Actor) error
	FindByID(db *gorm.DB, userID, id string) (*models.Actor, error)
	List(db *gorm.DB, userID string, active *bool) ([]models.Actor, error)
	Update(db *gorm.DB, actor *models.Actor) error
	Delete(db *gorm.DB, userID, id string) error
	CountActive(db *gorm.DB, userID string) (int64, error)
}

type actorRepository struct{}

func NewActorRepository() ActorRepository {
	return &actorRepository{}
}

func (r *actorRepository) Create(db *gorm.DB, actor *models.Actor) error {
	return db.Create(actor).Error
}

func (r *actorRepository) FindByID(db *gorm.DB, userID, id string) (*models.Actor, error) {
	var actor models.Actor
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&actor).Error; err != nil {
		return nil, notFound(err, ErrActorNotFound)
	}
	return &actor, nil
}

func (r *actorRepository) List(db *gorm.DB, userID string, active *bool) ([]models.Actor, error) {
	query := db.Where("user_id = ?", userID)
	if active != nil {
		query = query.Where("is_active = ?", *active)
	}

	var actors []models.Actor
	err := query.Order("created_at ASC").Find(&actors).Error
	return actors, err
}

func (r *actorRepository) Update(db *gorm.DB, actor *models.Actor) error {
	return db.Save(actor).Error
}

func (r *actorRepository) Delete(db *gorm.DB, userID, id string) error {
	return mustAffect(db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Actor{}), ErrActorNotFound)
}

func (r *actorRepository) CountActive(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Actor{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}
