package dto

type CreateActorRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Age         int    `json:"age" validate:"min=0,max=30"`
	Gender      string `json:"gender" validate:"max=50"`
	Ethnicity   string `json:"ethnicity" validate:"max=100"`
	Height      string `json:"height" validate:"max=50"`
	Weight      string `json:"weight" validate:"max=50"`
	HairColor   string `json:"hair_color" validate:"max=50"`
	EyeColor    string `json:"eye_color" validate:"max=50"`
	Bio         string `json:"bio" validate:"max=5000"`
	HeadshotURL string `json:"headshot_url" validate:"omitempty,max=2048"`
	ResumeURL   string `json:"resume_url" validate:"omitempty,max=2048"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateActorRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Age         *int    `json:"age" validate:"omitempty,min=0,max=30"`
	Gender      *string `json:"gender" validate:"omitempty,max=50"`
	Ethnicity   *string `json:"ethnicity" validate:"omitempty,max=100"`
	Height      *string `json:"height" validate:"omitempty,max=50"`
	Weight      *string `json:"weight" validate:"omitempty,max=50"`
	HairColor   *string `json:"hair_color" validate:"omitempty,max=50"`
	EyeColor    *string `json:"eye_color" validate:"omitempty,max=50"`
	Bio         *string `json:"bio" validate:"omitempty,max=5000"`
	HeadshotURL *string `json:"headshot_url" validate:"omitempty,max=2048"`
	ResumeURL   *string `json:"resume_url" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active"`
}
