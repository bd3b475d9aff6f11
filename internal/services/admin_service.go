package services

import (
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(db *gorm.DB, page, pageSize int) (*dto.PaginatedResponse, error)
}

type AdminServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewAdminService(userRepo repositories.UserRepository) AdminService {
	return &AdminServiceImpl{userRepo: userRepo}
}

func (s *AdminServiceImpl) ListUsers(db *gorm.DB, page, pageSize int) (*dto.PaginatedResponse, error) {
	users, total, err := s.userRepo.List(db, pageSize, dto.Offset(page, pageSize))
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.AdminUserDTO, 0, len(users))
	for i := range users {
		row := dto.AdminUserDTO{UserDTO: dto.NewUserDTO(&users[i])}
		if sub := users[i].Subscription; sub != nil {
			row.SubscriptionStatus = sub.Status
		}
		out = append(out, row)
	}
	return dto.NewPaginatedResponse(out, total, page, pageSize), nil
}
