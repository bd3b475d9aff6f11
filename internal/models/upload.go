package models

type Upload struct {
	BaseModel
	UserID        string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Bucket        string `gorm:"size:20;not null;index" json:"bucket"` // headshots, resumes, sides, receipts, selftapes
	EntityType    string `gorm:"size:20" json:"entity_type,omitempty"` // actor, audition, expense
	EntityID      string `gorm:"type:varchar(36);index" json:"entity_id,omitempty"`
	Path          string `gorm:"not null" json:"-"`
	URL           string `json:"url"`
	ThumbnailPath string `json:"-"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	MimeType      string `gorm:"size:100" json:"mime_type"`
	Size          int64  `json:"size"`
	OriginalName  string `gorm:"size:255" json:"original_name"`
}
