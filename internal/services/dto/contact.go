package dto

import (
	"time"

	"auditionhub_backend/internal/models"
)

type CreateContactRequest struct {
	Name          string             `json:"name" validate:"required,max=255"`
	Type          models.ContactType `json:"type" validate:"required,is-contact-type"`
	Company       string             `json:"company" validate:"max=255"`
	Email         string             `json:"email" validate:"omitempty,email,max=255"`
	Phone         string             `json:"phone" validate:"max=50"`
	Website       string             `json:"website" validate:"omitempty,max=2048"`
	Instagram     string             `json:"instagram" validate:"max=100"`
	Notes         string             `json:"notes" validate:"max=10000"`
	LastContacted *time.Time         `json:"last_contacted"`
}

type UpdateContactRequest struct {
	Name          *string             `json:"name" validate:"omitempty,min=1,max=255"`
	Type          *models.ContactType `json:"type" validate:"omitempty,is-contact-type"`
	Company       *string             `json:"company" validate:"omitempty,max=255"`
	Email         *string             `json:"email" validate:"omitempty,email,max=255"`
	Phone         *string             `json:"phone" validate:"omitempty,max=50"`
	Website       *string             `json:"website" validate:"omitempty,max=2048"`
	Instagram     *string             `json:"instagram" validate:"omitempty,max=100"`
	Notes         *string             `json:"notes" validate:"omitempty,max=10000"`
	LastContacted *time.Time          `json:"last_contacted"`
}

type ContactListQuery struct {
	Type   string `form:"type"`
	Search string `form:"search" validate:"max=255"`
}
