package model

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/newsletter-server/internal/domain"
)

// SubscriptionStatus is the lifecycle state of a subscriber.
type SubscriptionStatus string

const (
	// SubscriptionStatusPending is set on creation.
	SubscriptionStatusPending SubscriptionStatus = "pending_confirmation"
	// SubscriptionStatusConfirmed is terminal.
	SubscriptionStatusConfirmed SubscriptionStatus = "confirmed"
)

// SubscriptionStore defines persistence operations for subscribers and their confirmation tokens.
type SubscriptionStore interface {
	InsertSubscriber(ctx context.Context, subscriber domain.NewSubscriber) (uuid.UUID, error)
	StoreToken(ctx context.Context, subscriberID uuid.UUID, token string) error
	ConfirmSubscriber(ctx context.Context, token string) (uuid.UUID, error)
	GetSubscriberByEmail(ctx context.Context, email string) (Subscriber, error)
	GetSubscriberByToken(ctx context.Context, token string) (Subscriber, error)
	Ping(ctx context.Context) error
}

// Subscriber represents a stored mailing-list subscriber.
type Subscriber struct {
	ID           uuid.UUID
	Email        string
	Name         string
	SubscribedAt time.Time
	Status       SubscriptionStatus
}

// Confirmed reports whether the subscriber has redeemed a token.
func (s Subscriber) Confirmed() bool {
	return s.Status == SubscriptionStatusConfirmed
}

// SubscriptionToken binds a confirmation token to a subscriber.
type SubscriptionToken struct {
	Token        string
	SubscriberID uuid.UUID
}
