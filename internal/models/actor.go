package models

type Actor struct {
	BaseModel
	UserID      string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name        string `gorm:"not null;size:255" json:"name"`
	Age         int    `gorm:"not null" json:"age"`
	Gender      string `gorm:"size:50" json:"gender"`
	Ethnicity   string `gorm:"size:100" json:"ethnicity"`
	Height      string `gorm:"size:50" json:"height"`
	Weight      string `gorm:"size:50" json:"weight"`
	HairColor   string `gorm:"size:50" json:"hair_color"`
	EyeColor    string `gorm:"size:50" json:"eye_color"`
	Bio         string `gorm:"type:text" json:"bio"`
	HeadshotURL string `json:"headshot_url"`
	ResumeURL   string `json:"resume_url"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}
