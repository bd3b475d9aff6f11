package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/metrics"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/services/subscription"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const calendarEventDuration = time.Hour

type AuditionService interface {
	CreateAudition(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateAuditionRequest) (*models.Audition, error)
	GetAudition(db *gorm.DB, userID, id string) (*models.Audition, error)
	ListAuditions(db *gorm.DB, userID string, query *dto.AuditionListQuery, page, pageSize int) (*dto.PaginatedResponse, error)
	UpdateAudition(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateAuditionRequest) (*models.Audition, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID, id string, status models.AuditionStatus) (*models.Audition, error)
	DeleteAudition(ctx context.Context, db *gorm.DB, userID, id string) error
	Calendar(db *gorm.DB, userID string, from, to time.Time) ([]dto.CalendarEvent, error)
}

type AuditionServiceImpl struct {
	auditionRepo     repositories.AuditionRepository
	actorRepo        repositories.ActorRepository
	subscriptionRepo repositories.SubscriptionRepository
	publisher        events.Publisher
	cache            cache.Cache
	now              func() time.Time
}

func NewAuditionService(
	auditionRepo repositories.AuditionRepository,
	actorRepo repositories.ActorRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	publisher events.Publisher,
	c cache.Cache,
) AuditionService {
	return &AuditionServiceImpl{
		auditionRepo:     auditionRepo,
		actorRepo:        actorRepo,
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		cache:            c,
		now:              time.Now,
	}
}

func (s *AuditionServiceImpl) CreateAudition(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateAuditionRequest) (*models.Audition, error) {
	audition := &models.Audition{
		UserID:           userID,
		ProjectTitle:     strings.TrimSpace(req.ProjectTitle),
		RoleName:         strings.TrimSpace(req.RoleName),
		Type:             req.Type,
		Status:           req.Status,
		Source:           models.AuditionSourceManual,
		Description:      req.Description,
		Notes:            req.Notes,
		AuditionDate:     utcPtr(req.AuditionDate),
		CallbackDate:     utcPtr(req.CallbackDate),
		SubmittedDate:    utcPtr(req.SubmittedDate),
		Location:         req.Location,
		VirtualLink:      req.VirtualLink,
		SidesURL:         req.SidesURL,
		SelftapeURL:      req.SelftapeURL,
		CastingCompany:   req.CastingCompany,
		CastingDirector:  req.CastingDirector,
		CastingAssistant: req.CastingAssistant,
		CastingEmail:     req.CastingEmail,
		CastingPhone:     req.CastingPhone,
		SubmittedBy:      req.SubmittedBy,
	}
	if audition.Status == "" {
		audition.Status = models.AuditionStatusPending
	}
	if audition.ProjectTitle == "" || audition.RoleName == "" {
		return nil, apperrors.ValidationError(map[string]string{"project_title": "This field is required", "role_name": "This field is required"})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkMonthlyLimit(tx, userID); err != nil {
			return err
		}
		if req.ActorID != nil && *req.ActorID != "" {
			if _, err := s.actorRepo.FindByID(tx, userID, *req.ActorID); err != nil {
				return repoErr(err)
			}
			audition.ActorID = req.ActorID
		}
		return repoErr(s.auditionRepo.Create(tx, audition))
	})
	if err != nil {
		return nil, err
	}

	metrics.AuditionCreated(string(audition.Source))
	invalidateDashboard(ctx, s.cache, userID)
	return audition, nil
}

func (s *AuditionServiceImpl) GetAudition(db *gorm.DB, userID, id string) (*models.Audition, error) {
	audition, err := s.auditionRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return audition, nil
}

// ListAuditions filters the user's auditions in memory so that the tab rules
// and the search match exactly what the dashboard counts.
func (s *AuditionServiceImpl) ListAuditions(db *gorm.DB, userID string, query *dto.AuditionListQuery, page, pageSize int) (*dto.PaginatedResponse, error) {
	all, err := s.auditionRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	filtered := algorithms.FilterAuditions(all, query.Filter(), s.now())
	if strings.EqualFold(query.Tab, algorithms.TabUpcoming) {
		sortByAuditionDate(filtered)
	}

	return dto.NewPaginatedResponse(dto.Paginate(filtered, page, pageSize), int64(len(filtered)), page, pageSize), nil
}

func (s *AuditionServiceImpl) UpdateAudition(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateAuditionRequest) (*models.Audition, error) {
	var (
		audition  *models.Audition
		oldStatus models.AuditionStatus
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		audition, err = s.auditionRepo.FindByID(tx, userID, id)
		if err != nil {
			return repoErr(err)
		}
		oldStatus = audition.Status

		if req.ActorID != nil {
			if *req.ActorID == "" {
				audition.ActorID = nil
			} else {
				if _, err := s.actorRepo.FindByID(tx, userID, *req.ActorID); err != nil {
					return repoErr(err)
				}
				audition.ActorID = req.ActorID
			}
			audition.Actor = nil
		}

		setIf(&audition.ProjectTitle, req.ProjectTitle)
		setIf(&audition.RoleName, req.RoleName)
		setIf(&audition.Type, req.Type)
		setIf(&audition.Status, req.Status)
		setIf(&audition.Description, req.Description)
		setIf(&audition.Notes, req.Notes)
		if req.AuditionDate != nil {
			audition.AuditionDate = utcPtr(req.AuditionDate)
			// a moved audition deserves a new reminder
			audition.ReminderSentAt = nil
		}
		if req.CallbackDate != nil {
			audition.CallbackDate = utcPtr(req.CallbackDate)
		}
		if req.SubmittedDate != nil {
			audition.SubmittedDate = utcPtr(req.SubmittedDate)
		}
		setIf(&audition.Location, req.Location)
		setIf(&audition.VirtualLink, req.VirtualLink)
		setIf(&audition.SidesURL, req.SidesURL)
		setIf(&audition.SelftapeURL, req.SelftapeURL)
		setIf(&audition.CastingCompany, req.CastingCompany)
		setIf(&audition.CastingDirector, req.CastingDirector)
		setIf(&audition.CastingAssistant, req.CastingAssistant)
		setIf(&audition.CastingEmail, req.CastingEmail)
		setIf(&audition.CastingPhone, req.CastingPhone)
		setIf(&audition.SubmittedBy, req.SubmittedBy)

		if strings.TrimSpace(audition.ProjectTitle) == "" || strings.TrimSpace(audition.RoleName) == "" {
			return apperrors.ValidationError(map[string]string{"project_title": "This field is required", "role_name": "This field is required"})
		}
		return repoErr(s.auditionRepo.Update(tx, audition))
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusChange(ctx, audition, oldStatus)
	invalidateDashboard(ctx, s.cache, userID)
	return s.GetAudition(db, userID, id)
}

func (s *AuditionServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, userID, id string, status models.AuditionStatus) (*models.Audition, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus("audition", "Unknown audition status")
	}

	audition, err := s.auditionRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}
	oldStatus := audition.Status

	if err := s.auditionRepo.UpdateStatus(db, userID, id, status); err != nil {
		return nil, repoErr(err)
	}
	audition.Status = status

	s.publishStatusChange(ctx, audition, oldStatus)
	invalidateDashboard(ctx, s.cache, userID)
	return audition, nil
}

func (s *AuditionServiceImpl) DeleteAudition(ctx context.Context, db *gorm.DB, userID, id string) error {
	if err := s.auditionRepo.Delete(db, userID, id); err != nil {
		return repoErr(err)
	}
	invalidateDashboard(ctx, s.cache, userID)
	return nil
}

// Calendar expands auditions into one event per audition date and one per callback date.
func (s *AuditionServiceImpl) Calendar(db *gorm.DB, userID string, from, to time.Time) ([]dto.CalendarEvent, error) {
	if to.Before(from) {
		return nil, apperrors.NewBadRequestError("'from' must not be after 'to'")
	}

	auditions, err := s.auditionRepo.ListInRange(db, userID, from, to)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return CalendarEvents(auditions, from, to), nil
}

// CalendarEvents builds calendar entries that start inside [from, to], ordered by start.
func CalendarEvents(auditions []models.Audition, from, to time.Time) []dto.CalendarEvent {
	inRange := func(t *time.Time) bool {
		return t != nil && !t.Before(from) && !t.After(to)
	}

	out := make([]dto.CalendarEvent, 0, len(auditions))
	for _, a := range auditions {
		title := a.ProjectTitle + " - " + a.RoleName
		if inRange(a.AuditionDate) {
			out = append(out, dto.CalendarEvent{
				ID:         a.ID,
				AuditionID: a.ID,
				Kind:       dto.CalendarEventAudition,
				Title:      title,
				Start:      *a.AuditionDate,
				End:        a.AuditionDate.Add(calendarEventDuration),
				Location:   a.Location,
				Type:       a.Type,
				Status:     a.Status,
			})
		}
		if inRange(a.CallbackDate) {
			out = append(out, dto.CalendarEvent{
				ID:         a.ID + "-callback",
				AuditionID: a.ID,
				Kind:       dto.CalendarEventCallback,
				Title:      "Callback: " + title,
				Start:      *a.CallbackDate,
				End:        a.CallbackDate.Add(calendarEventDuration),
				Location:   a.Location,
				Type:       a.Type,
				Status:     a.Status,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// checkMonthlyLimit applies the FREE quota to manually created auditions.
func (s *AuditionServiceImpl) checkMonthlyLimit(db *gorm.DB, userID string) error {
	tier, err := effectiveTier(db, s.subscriptionRepo, userID)
	if err != nil {
		return err
	}
	if tier != models.SubscriptionTierFree {
		return nil
	}

	count, err := s.auditionRepo.CountCreatedSince(db, userID, models.AuditionSourceManual, startOfMonth(s.now()))
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if count >= subscription.FreeAuditionsPerMonth {
		return apperrors.ErrPlanLimit("The free plan allows 10 auditions per month. Upgrade for unlimited auditions.", subscription.FreeAuditionsPerMonth)
	}
	return nil
}

func (s *AuditionServiceImpl) publishStatusChange(ctx context.Context, a *models.Audition, oldStatus models.AuditionStatus) {
	if a.Status == oldStatus {
		return
	}
	if a.Status != models.AuditionStatusCallback && a.Status != models.AuditionStatusBooked {
		return
	}

	evt := events.NewStatusChanged(events.AuditionStatusChanged{
		AuditionID:   a.ID,
		UserID:       a.UserID,
		ProjectTitle: a.ProjectTitle,
		RoleName:     a.RoleName,
		OldStatus:    string(oldStatus),
		NewStatus:    string(a.Status),
	})
	err := s.publisher.Publish(ctx, evt)
	logger.EventLog("publish", evt.Type, err)
}

func sortByAuditionDate(auditions []models.Audition) {
	sort.SliceStable(auditions, func(i, j int) bool {
		a, b := auditions[i].AuditionDate, auditions[j].AuditionDate
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
