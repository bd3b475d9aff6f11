package models

import "time"

type Contact struct {
	BaseModel
	UserID        string      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name          string      `gorm:"not null;size:255" json:"name"`
	Type          ContactType `gorm:"type:varchar(20);not null" json:"type"`
	Company       string      `gorm:"size:255" json:"company"`
	Email         string      `gorm:"size:255" json:"email"`
	Phone         string      `gorm:"size:50" json:"phone"`
	Website       string      `json:"website"`
	Instagram     string      `gorm:"size:100" json:"instagram"`
	Notes         string      `gorm:"type:text" json:"notes"`
	LastContacted *time.Time  `json:"last_contacted,omitempty"`
}
