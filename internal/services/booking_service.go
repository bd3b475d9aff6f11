package services

import (
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// serviceCatalog is fixed; prices are in cents.
var serviceCatalog = []dto.ServiceItem{
	{
		ID:          "audition-prep-guide",
		Name:        "Audition Prep Guide",
		Description: "A step-by-step guide to preparing sides, slating and self-tapes.",
		BookingType: models.BookingTypeAuditionPrepGuide,
		Price:       999,
	},
	{
		ID:          "self-tape-feedback",
		Name:        "Self Tape Feedback",
		Description: "Written feedback on one self-tape from a working coach within 48 hours.",
		BookingType: models.BookingTypeSelfTapeFeedback,
		Price:       2200,
	},
	{
		ID:          "private-coaching",
		Name:        "Private Audition Coaching",
		Description: "A one-hour private session to work on an upcoming audition.",
		BookingType: models.BookingTypeCoachingSession,
		Price:       8500,
	},
	{
		ID:          "bold-choices-game",
		Name:        "Bold Choices Game",
		Description: "A printable game that helps young actors explore bold character choices.",
		Free:        true,
	},
	{
		ID:          "parents-guide-self-tapes",
		Name:        "Parent's Guide to Self Tapes",
		Description: "Lighting, sound and framing basics for recording at home.",
		Free:        true,
	},
}

type BookingService interface {
	ListServices() []dto.ServiceItem
	FindService(id string) (dto.ServiceItem, error)
	ListBookings(db *gorm.DB, userID string) ([]models.Booking, error)
	GetBooking(db *gorm.DB, userID, id string) (*models.Booking, error)
	UpdateBooking(db *gorm.DB, userID, id string, req *dto.UpdateBookingRequest) (*models.Booking, error)
	CancelBooking(db *gorm.DB, userID, id string) (*models.Booking, error)
}

type BookingServiceImpl struct {
	bookingRepo repositories.BookingRepository
}

func NewBookingService(bookingRepo repositories.BookingRepository) BookingService {
	return &BookingServiceImpl{bookingRepo: bookingRepo}
}

func (s *BookingServiceImpl) ListServices() []dto.ServiceItem {
	out := make([]dto.ServiceItem, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

func (s *BookingServiceImpl) FindService(id string) (dto.ServiceItem, error) {
	for _, item := range serviceCatalog {
		if item.ID == id {
			return item, nil
		}
	}
	return dto.ServiceItem{}, apperrors.ErrServiceNotFound
}

func (s *BookingServiceImpl) ListBookings(db *gorm.DB, userID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.List(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return bookings, nil
}

func (s *BookingServiceImpl) GetBooking(db *gorm.DB, userID, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return booking, nil
}

func (s *BookingServiceImpl) UpdateBooking(db *gorm.DB, userID, id string, req *dto.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}

	if req.Status != nil && *req.Status == models.BookingStatusCancelled && booking.Status == models.BookingStatusCompleted {
		return nil, apperrors.ErrBookingCompleted
	}
	if req.StartTime != nil {
		booking.StartTime = utcPtr(req.StartTime)
	}
	if req.EndTime != nil {
		booking.EndTime = utcPtr(req.EndTime)
	}
	if booking.StartTime != nil && booking.EndTime != nil && booking.EndTime.Before(*booking.StartTime) {
		return nil, apperrors.NewBadRequestError("end_time cannot be before start_time")
	}
	setIf(&booking.Notes, req.Notes)
	setIf(&booking.Status, req.Status)

	if err := s.bookingRepo.Update(db, booking); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return booking, nil
}

// CancelBooking backs DELETE /bookings/:id; the row is kept with status CANCELLED.
func (s *BookingServiceImpl) CancelBooking(db *gorm.DB, userID, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}
	if booking.Status == models.BookingStatusCompleted {
		return nil, apperrors.ErrBookingCompleted
	}
	if booking.Status == models.BookingStatusCancelled {
		return booking, nil
	}

	booking.Status = models.BookingStatusCancelled
	if err := s.bookingRepo.Update(db, booking); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return booking, nil
}
