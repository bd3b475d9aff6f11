package models

import "time"

type User struct {
	BaseModel
	Email            string   `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash     string   `gorm:"not null" json:"-"`
	Name             string   `gorm:"size:255" json:"name"`
	ParentName       string   `gorm:"size:255" json:"parent_name"`
	Phone            string   `gorm:"size:50" json:"phone"`
	Location         string   `gorm:"size:255" json:"location"`
	Timezone         string   `gorm:"size:64" json:"timezone"`
	Image            string   `json:"image"`
	Role             UserRole `gorm:"type:varchar(20);not null;default:'parent'" json:"role"`
	StripeCustomerID string   `gorm:"size:255;index" json:"-"`

	ResetTokenHash      string     `gorm:"size:64;index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	TOTPSecret  string `gorm:"size:64" json:"-"`
	TOTPEnabled bool   `gorm:"default:false" json:"totp_enabled"`

	Subscription *Subscription `gorm:"foreignKey:UserID" json:"subscription,omitempty"`
}

// RefreshToken stores only the sha256 of the opaque token handed to the client.
type RefreshToken struct {
	BaseModel
	UserID    string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	TokenHash string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
