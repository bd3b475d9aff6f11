package workers

import (
	"context"
	"errors"

	"auditionhub_backend/internal/email"
	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// NewStatusNotifier returns the consumer handler that emails the parent when
// an audition reaches CALLBACK or BOOKED.
func NewStatusNotifier(db *gorm.DB, userRepo repositories.UserRepository, mailer AuditionMailer) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		if event.Type != events.TypeAuditionStatusChanged {
			return nil
		}
		p := event.Payload
		if p.NewStatus != string(models.AuditionStatusCallback) && p.NewStatus != string(models.AuditionStatusBooked) {
			return nil
		}

		user, err := userRepo.FindByID(db.WithContext(ctx), p.UserID)
		if err != nil {
			// the account was deleted after the event was published
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil
			}
			return err
		}

		return mailer.SendAuditionStatus(ctx, user.Email, user.Name, email.AuditionInfo{
			ID:           p.AuditionID,
			ProjectTitle: p.ProjectTitle,
			RoleName:     p.RoleName,
			Status:       p.NewStatus,
		})
	}
}
