package models

import "time"

type Audition struct {
	BaseModel
	UserID  string  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ActorID *string `gorm:"type:varchar(36);index" json:"actor_id,omitempty"`

	ProjectTitle string         `gorm:"not null;size:255" json:"project_title"`
	RoleName     string         `gorm:"not null;size:255" json:"role_name"`
	Type         AuditionType   `gorm:"type:varchar(20);not null" json:"type"`
	Status       AuditionStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Source       AuditionSource `gorm:"type:varchar(20);not null;default:'MANUAL'" json:"source"`
	Description  string         `gorm:"type:text" json:"description"`
	Notes        string         `gorm:"type:text" json:"notes"`

	AuditionDate  *time.Time `gorm:"index" json:"audition_date,omitempty"`
	CallbackDate  *time.Time `json:"callback_date,omitempty"`
	SubmittedDate *time.Time `json:"submitted_date,omitempty"`
	Location      string     `gorm:"size:255" json:"location"`
	VirtualLink   string     `json:"virtual_link"`

	SidesURL    string `json:"sides_url"`
	SelftapeURL string `json:"selftape_url"`

	CastingCompany   string `gorm:"size:255" json:"casting_company"`
	CastingDirector  string `gorm:"size:255" json:"casting_director"`
	CastingAssistant string `gorm:"size:255" json:"casting_assistant"`
	CastingEmail     string `gorm:"size:255" json:"casting_email"`
	CastingPhone     string `gorm:"size:50" json:"casting_phone"`
	SubmittedBy      string `gorm:"size:255" json:"submitted_by"`

	ReminderSentAt *time.Time `json:"-"`

	Actor *Actor `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL" json:"actor,omitempty"`
}
