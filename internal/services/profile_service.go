package services

import (
	"auditionhub_backend/internal/auth"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserDTO, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
}

type ProfileServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{userRepo: userRepo}
}

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, repoErr(err)
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *ProfileServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, repoErr(err)
	}

	setIf(&user.Name, req.Name)
	setIf(&user.ParentName, req.ParentName)
	setIf(&user.Phone, req.Phone)
	setIf(&user.Location, req.Location)
	setIf(&user.Timezone, req.Timezone)
	setIf(&user.Image, req.Image)

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *ProfileServiceImpl) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return repoErr(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("Current password is incorrect")
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash
	return repoErr(s.userRepo.Update(db, user))
}

// setIf copies a present optional field.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
