package dto

import "auditionhub_backend/internal/models"

// InboundEmailRequest is the payload posted by the inbound mail relay.
type InboundEmailRequest struct {
	From    string `json:"from" validate:"required,max=255"`
	To      string `json:"to" validate:"required,max=255"`
	Subject string `json:"subject" validate:"max=500"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

type InboundEmailResponse struct {
	Success  bool             `json:"success"`
	Skipped  bool             `json:"skipped,omitempty"`
	Audition *models.Audition `json:"audition,omitempty"`
}

type FilterRuleDTO struct {
	Field    string `json:"field" validate:"required,is-filter-field"`
	Contains string `json:"contains" validate:"required,max=255"`
}

type UpdateEmailSettingsRequest struct {
	Enabled     *bool           `json:"enabled"`
	FilterRules []FilterRuleDTO `json:"filter_rules" validate:"omitempty,max=50,dive"`
}
