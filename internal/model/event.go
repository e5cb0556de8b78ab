package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	SubjectSubscriptionCreated   = "subscription.created"
	SubjectSubscriptionConfirmed = "subscription.confirmed"
)

// EventPublisher publishes domain events to a message bus.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, v any) error
}

type SubscriptionCreated struct {
	SubscriberID uuid.UUID `json:"subscriber_id"`
	Email        string    `json:"email"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type SubscriptionConfirmed struct {
	SubscriberID uuid.UUID `json:"subscriber_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
