package models

import (
	"time"

	"gorm.io/datatypes"
)

// FilterRule accepts an inbound email when Field ("from", "to" or "subject")
// contains Contains, case-insensitively.
type FilterRule struct {
	Field    string `json:"field"`
	Contains string `json:"contains"`
}

type EmailSettings struct {
	BaseModel
	UserID            string                          `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Enabled           bool                            `gorm:"not null" json:"enabled"`
	ForwardingAddress string                          `gorm:"size:255;not null;uniqueIndex" json:"forwarding_address"`
	FilterRules       datatypes.JSONSlice[FilterRule] `json:"filter_rules"`
}

type EmailLog struct {
	BaseModel
	UserID        *string        `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	Sender        string         `gorm:"size:255" json:"sender"`
	Recipient     string         `gorm:"size:255" json:"recipient"`
	Subject       string         `gorm:"size:500" json:"subject"`
	ReceivedAt    time.Time      `json:"received_at"`
	ParsedContent string         `gorm:"type:text" json:"parsed_content"`
	Status        EmailLogStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ErrorMessage  string         `gorm:"type:text" json:"error_message,omitempty"`
	AuditionID    *string        `gorm:"type:varchar(36)" json:"audition_id,omitempty"`
}
