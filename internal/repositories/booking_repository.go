package repositories

import (
	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *models.Booking) error
	FindByID(db *gorm.DB, userID, id string) (*models.Booking, error)
	FindByIDUnscoped(db *gorm.DB, id string) (*models.Booking, error)
	List(db *gorm.DB, userID string) ([]models.Booking, error)
	Update(db *gorm.DB, booking *models.Booking) error
}

type bookingRepository struct{}

func NewBookingRepository() BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *models.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, userID, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&booking).Error; err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return &booking, nil
}

// FindByIDUnscoped is for payment webhooks, which carry no user session.
func (r *bookingRepository) FindByIDUnscoped(db *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := db.First(&booking, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return &booking, nil
}

func (r *bookingRepository) List(db *gorm.DB, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) Update(db *gorm.DB, booking *models.Booking) error {
	return db.Save(booking).Error
}
