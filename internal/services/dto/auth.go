package dto

import (
	"time"

	"auditionhub_backend/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OTPCode  string `json:"otp_code" validate:"omitempty,numeric,len=6"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type TwoFactorCodeRequest struct {
	Code string `json:"code" validate:"required,numeric,len=6"`
}

type TwoFactorSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserDTO   `json:"user"`
}

// UserDTO is the public view of a user.
type UserDTO struct {
	ID          string                  `json:"id"`
	Email       string                  `json:"email"`
	Name        string                  `json:"name"`
	ParentName  string                  `json:"parent_name"`
	Phone       string                  `json:"phone"`
	Location    string                  `json:"location"`
	Timezone    string                  `json:"timezone"`
	Image       string                  `json:"image"`
	Role        models.UserRole         `json:"role"`
	TOTPEnabled bool                    `json:"totp_enabled"`
	Tier        models.SubscriptionTier `json:"tier"`
	CreatedAt   time.Time               `json:"created_at"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		ParentName:  u.ParentName,
		Phone:       u.Phone,
		Location:    u.Location,
		Timezone:    u.Timezone,
		Image:       u.Image,
		Role:        u.Role,
		TOTPEnabled: u.TOTPEnabled,
		Tier:        u.Subscription.EffectiveTier(),
		CreatedAt:   u.CreatedAt,
	}
}

type UpdateProfileRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=255"`
	ParentName *string `json:"parent_name" validate:"omitempty,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,max=50"`
	Location   *string `json:"location" validate:"omitempty,max=255"`
	Timezone   *string `json:"timezone" validate:"omitempty,max=64"`
	Image      *string `json:"image" validate:"omitempty,max=2048"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// AdminUserDTO is one row of the admin user list.
type AdminUserDTO struct {
	UserDTO
	SubscriptionStatus models.SubscriptionStatus `json:"subscription_status,omitempty"`
}
