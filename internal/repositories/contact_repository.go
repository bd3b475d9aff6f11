package repositories

import (
	"strings"

	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

type ContactFilter struct {
	Type   models.ContactType
	Search string
}

type ContactRepository interface {
	Create(db *gorm.DB, contact *models.Contact) error
	FindByID(db *gorm.DB, userID, id string) (*models.Contact, error)
	List(db *gorm.DB, userID string, filter ContactFilter) ([]models.Contact, error)
	Update(db *gorm.DB, contact *models.Contact) error
	Delete(db *gorm.DB, userID, id string) error
}

type contactRepository struct{}

func NewContactRepository() ContactRepository {
	return &contactRepository{}
}

func (r *contactRepository) Create(db *gorm.DB, contact *models.Contact) error {
	return db.Create(contact).Error
}

func (r *contactRepository) FindByID(db *gorm.DB, userID, id string) (*models.Contact, error) {
	var contact models.Contact
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&contact).Error; err != nil {
		return nil, notFound(err, ErrContactNotFound)
	}
	return &contact, nil
}

func (r *contactRepository) List(db *gorm.DB, userID string, filter ContactFilter) ([]models.Contact, error) {
	query := db.Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		like := "%" + s + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	var contacts []models.Contact
	err := query.Order("name ASC").Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) Update(db *gorm.DB, contact *models.Contact) error {
	return db.Save(contact).Error
}

func (r *contactRepository) Delete(db *gorm.DB, userID, id string) error {
	return mustAffect(db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Contact{}), ErrContactNotFound)
}
