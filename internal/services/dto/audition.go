package dto

import (
	"time"

	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/models"
)

type CreateAuditionRequest struct {
	ActorID      *string               `json:"actor_id" validate:"omitempty,uuid"`
	ProjectTitle string                `json:"project_title" validate:"required,max=255"`
	RoleName     string                `json:"role_name" validate:"required,max=255"`
	Type         models.AuditionType   `json:"type" validate:"required,is-audition-type"`
	Status       models.AuditionStatus `json:"status" validate:"omitempty,is-audition-status"`
	Description  string                `json:"description" validate:"max=10000"`
	Notes        string                `json:"notes" validate:"max=10000"`

	AuditionDate  *time.Time `json:"audition_date"`
	CallbackDate  *time.Time `json:"callback_date"`
	SubmittedDate *time.Time `json:"submitted_date"`
	Location      string     `json:"location" validate:"max=255"`
	VirtualLink   string     `json:"virtual_link" validate:"omitempty,url,max=2048"`

	SidesURL    string `json:"sides_url" validate:"omitempty,max=2048"`
	SelftapeURL string `json:"selftape_url" validate:"omitempty,max=2048"`

	CastingCompany   string `json:"casting_company" validate:"max=255"`
	CastingDirector  string `json:"casting_director" validate:"max=255"`
	CastingAssistant string `json:"casting_assistant" validate:"max=255"`
	CastingEmail     string `json:"casting_email" validate:"omitempty,email,max=255"`
	CastingPhone     string `json:"casting_phone" validate:"max=50"`
	SubmittedBy      string `json:"submitted_by" validate:"max=255"`
}

// UpdateAuditionRequest applies only the fields that are present.
// An empty actor_id string detaches the actor.
type UpdateAuditionRequest struct {
	ActorID      *string                `json:"actor_id" validate:"omitempty,max=36"`
	ProjectTitle *string                `json:"project_title" validate:"omitempty,min=1,max=255"`
	RoleName     *string                `json:"role_name" validate:"omitempty,min=1,max=255"`
	Type         *models.AuditionType   `json:"type" validate:"omitempty,is-audition-type"`
	Status       *models.AuditionStatus `json:"status" validate:"omitempty,is-audition-status"`
	Description  *string                `json:"description" validate:"omitempty,max=10000"`
	Notes        *string                `json:"notes" validate:"omitempty,max=10000"`

	AuditionDate  *time.Time `json:"audition_date"`
	CallbackDate  *time.Time `json:"callback_date"`
	SubmittedDate *time.Time `json:"submitted_date"`
	Location      *string    `json:"location" validate:"omitempty,max=255"`
	VirtualLink   *string    `json:"virtual_link" validate:"omitempty,max=2048"`

	SidesURL    *string `json:"sides_url" validate:"omitempty,max=2048"`
	SelftapeURL *string `json:"selftape_url" validate:"omitempty,max=2048"`

	CastingCompany   *string `json:"casting_company" validate:"omitempty,max=255"`
	CastingDirector  *string `json:"casting_director" validate:"omitempty,max=255"`
	CastingAssistant *string `json:"casting_assistant" validate:"omitempty,max=255"`
	CastingEmail     *string `json:"casting_email" validate:"omitempty,email,max=255"`
	CastingPhone     *string `json:"casting_phone" validate:"omitempty,max=50"`
	SubmittedBy      *string `json:"submitted_by" validate:"omitempty,max=255"`
}

type UpdateAuditionStatusRequest struct {
	Status models.AuditionStatus `json:"status" validate:"required,is-audition-status"`
}

// AuditionListQuery is bound from the query string of GET /auditions.
type AuditionListQuery struct {
	Search   string `form:"search" validate:"max=255"`
	Status   string `form:"status"`
	Type     string `form:"type"`
	Tab      string `form:"tab" validate:"omitempty,oneof=upcoming past all"`
	ActorID  string `form:"actor_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (q AuditionListQuery) Filter() algorithms.AuditionFilter {
	return algorithms.AuditionFilter{
		Search:  q.Search,
		Status:  q.Status,
		Type:    q.Type,
		Tab:     q.Tab,
		ActorID: q.ActorID,
	}
}

const (
	CalendarEventAudition = "audition"
	CalendarEventCallback = "callback"
)

type CalendarEvent struct {
	ID         string                `json:"id"`
	AuditionID string                `json:"audition_id"`
	Kind       string                `json:"kind"`
	Title      string                `json:"title"`
	Start      time.Time             `json:"start"`
	End        time.Time             `json:"end"`
	Location   string                `json:"location,omitempty"`
	Type       models.AuditionType   `json:"type"`
	Status     models.AuditionStatus `json:"status"`
}
