package dto

import (
	"time"

	"auditionhub_backend/internal/models"
)

// ServiceItem is one entry of the services catalog. Price is in cents; 0 means free.
type ServiceItem struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	BookingType models.BookingType `json:"booking_type,omitempty"`
	Price       int64              `json:"price"`
	Free        bool               `json:"free"`
}

type UpdateBookingRequest struct {
	StartTime *time.Time            `json:"start_time"`
	EndTime   *time.Time            `json:"end_time"`
	Notes     *string               `json:"notes" validate:"omitempty,max=5000"`
	Status    *models.BookingStatus `json:"status" validate:"omitempty,is-booking-status"`
}
