package services

import (
	"strings"

	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactService interface {
	CreateContact(db *gorm.DB, userID string, req *dto.CreateContactRequest) (*models.Contact, error)
	GetContact(db *gorm.DB, userID, id string) (*models.Contact, error)
	ListContacts(db *gorm.DB, userID string, query *dto.ContactListQuery) ([]models.Contact, error)
	UpdateContact(db *gorm.DB, userID, id string, req *dto.UpdateContactRequest) (*models.Contact, error)
	DeleteContact(db *gorm.DB, userID, id string) error
}

type ContactServiceImpl struct {
	contactRepo repositories.ContactRepository
}

func NewContactService(contactRepo repositories.ContactRepository) ContactService {
	return &ContactServiceImpl{contactRepo: contactRepo}
}

func (s *ContactServiceImpl) CreateContact(db *gorm.DB, userID string, req *dto.CreateContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		UserID:        userID,
		Name:          strings.TrimSpace(req.Name),
		Type:          req.Type,
		Company:       req.Company,
		Email:         strings.TrimSpace(req.Email),
		Phone:         req.Phone,
		Website:       req.Website,
		Instagram:     req.Instagram,
		Notes:         req.Notes,
		LastContacted: req.LastContacted,
	}
	if err := s.contactRepo.Create(db, contact); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return contact, nil
}

func (s *ContactServiceImpl) GetContact(db *gorm.DB, userID, id string) (*models.Contact, error) {
	contact, err := s.contactRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return contact, nil
}

func (s *ContactServiceImpl) ListContacts(db *gorm.DB, userID string, query *dto.ContactListQuery) ([]models.Contact, error) {
	var filter repositories.ContactFilter
	if query != nil {
		if t := strings.ToUpper(strings.TrimSpace(query.Type)); t != "" && t != algorithms.FilterAll {
			ct := models.ContactType(t)
			if !ct.Valid() {
				return nil, apperrors.NewBadRequestError("Unknown contact type: " + query.Type)
			}
			filter.Type = ct
		}
		filter.Search = query.Search
	}

	contacts, err := s.contactRepo.List(db, userID, filter)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return contacts, nil
}

func (s *ContactServiceImpl) UpdateContact(db *gorm.DB, userID, id string, req *dto.UpdateContactRequest) (*models.Contact, error) {
	contact, err := s.contactRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}

	setIf(&contact.Name, req.Name)
	setIf(&contact.Type, req.Type)
	setIf(&contact.Company, req.Company)
	setIf(&contact.Email, req.Email)
	setIf(&contact.Phone, req.Phone)
	setIf(&contact.Website, req.Website)
	setIf(&contact.Instagram, req.Instagram)
	setIf(&contact.Notes, req.Notes)
	if req.LastContacted != nil {
		contact.LastContacted = req.LastContacted
	}

	if err := s.contactRepo.Update(db, contact); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return contact, nil
}

func (s *ContactServiceImpl) DeleteContact(db *gorm.DB, userID, id string) error {
	return repoErr(s.contactRepo.Delete(db, userID, id))
}
