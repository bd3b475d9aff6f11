package events

import (
	"context"
	"time"
)

const TypeAuditionStatusChanged = "audition.status_changed"

// Event is the JSON envelope written to the queue.
type Event struct {
	Type       string                `json:"type"`
	OccurredAt time.Time             `json:"occurred_at"`
	Payload    AuditionStatusChanged `json:"payload"`
}

type AuditionStatusChanged struct {
	AuditionID   string `json:"audition_id"`
	UserID       string `json:"user_id"`
	ProjectTitle string `json:"project_title"`
	RoleName     string `json:"role_name"`
	OldStatus    string `json:"old_status"`
	NewStatus    string `json:"new_status"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Handler processes one consumed event. Returning an error nacks the delivery.
type Handler func(ctx context.Context, event Event) error

// NoopPublisher drops events. Used when RabbitMQ is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }

func (NoopPublisher) Close() error { return nil }

func NewStatusChanged(p AuditionStatusChanged) Event {
	return Event{Type: TypeAuditionStatusChanged, OccurredAt: time.Now().UTC(), Payload: p}
}
