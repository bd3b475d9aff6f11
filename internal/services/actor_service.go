package services

import (
	"strings"

	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/services/subscription"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ActorService interface {
	CreateActor(db *gorm.DB, userID string, req *dto.CreateActorRequest) (*models.Actor, error)
	GetActor(db *gorm.DB, userID, id string) (*models.Actor, error)
	ListActors(db *gorm.DB, userID string, active *bool) ([]models.Actor, error)
	UpdateActor(db *gorm.DB, userID, id string, req *dto.UpdateActorRequest) (*models.Actor, error)
	DeleteActor(db *gorm.DB, userID, id string) error
}

type ActorServiceImpl struct {
	actorRepo        repositories.ActorRepository
	subscriptionRepo repositories.SubscriptionRepository
}

func NewActorService(actorRepo repositories.ActorRepository, subscriptionRepo repositories.SubscriptionRepository) ActorService {
	return &ActorServiceImpl{
		actorRepo:        actorRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *ActorServiceImpl) CreateActor(db *gorm.DB, userID string, req *dto.CreateActorRequest) (*models.Actor, error) {
	actor := &models.Actor{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Age:         req.Age,
		Gender:      req.Gender,
		Ethnicity:   req.Ethnicity,
		Height:      req.Height,
		Weight:      req.Weight,
		HairColor:   req.HairColor,
		EyeColor:    req.EyeColor,
		Bio:         req.Bio,
		HeadshotURL: req.HeadshotURL,
		ResumeURL:   req.ResumeURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		actor.IsActive = *req.IsActive
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if actor.IsActive {
			if err := s.checkActorLimit(tx, userID); err != nil {
				return err
			}
		}
		return repoErr(s.actorRepo.Create(tx, actor))
	})
	if err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *ActorServiceImpl) GetActor(db *gorm.DB, userID, id string) (*models.Actor, error) {
	actor, err := s.actorRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return actor, nil
}

func (s *ActorServiceImpl) ListActors(db *gorm.DB, userID string, active *bool) ([]models.Actor, error) {
	actors, err := s.actorRepo.List(db, userID, active)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return actors, nil
}

func (s *ActorServiceImpl) UpdateActor(db *gorm.DB, userID, id string, req *dto.UpdateActorRequest) (*models.Actor, error) {
	var actor *models.Actor
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		actor, err = s.actorRepo.FindByID(tx, userID, id)
		if err != nil {
			return repoErr(err)
		}

		// reactivating counts against the plan limit
		if req.IsActive != nil && *req.IsActive && !actor.IsActive {
			if err := s.checkActorLimit(tx, userID); err != nil {
				return err
			}
		}

		setIf(&actor.Name, req.Name)
		setIf(&actor.Age, req.Age)
		setIf(&actor.Gender, req.Gender)
		setIf(&actor.Ethnicity, req.Ethnicity)
		setIf(&actor.Height, req.Height)
		setIf(&actor.Weight, req.Weight)
		setIf(&actor.HairColor, req.HairColor)
		setIf(&actor.EyeColor, req.EyeColor)
		setIf(&actor.Bio, req.Bio)
		setIf(&actor.HeadshotURL, req.HeadshotURL)
		setIf(&actor.ResumeURL, req.ResumeURL)
		setIf(&actor.IsActive, req.IsActive)

		return repoErr(s.actorRepo.Update(tx, actor))
	})
	if err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *ActorServiceImpl) DeleteActor(db *gorm.DB, userID, id string) error {
	return repoErr(s.actorRepo.Delete(db, userID, id))
}

func (s *ActorServiceImpl) checkActorLimit(db *gorm.DB, userID string) error {
	tier, err := effectiveTier(db, s.subscriptionRepo, userID)
	if err != nil {
		return err
	}
	if tier != models.SubscriptionTierFree {
		return nil
	}

	count, err := s.actorRepo.CountActive(db, userID)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if count >= subscription.FreeActiveActors {
		return apperrors.ErrPlanLimit("The free plan allows one active actor profile. Upgrade to add more.", subscription.FreeActiveActors)
	}
	return nil
}
