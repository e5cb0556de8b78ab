package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/newsletter-server/internal/domain"
	"github.com/dtroode/newsletter-server/internal/model"
)

var _ model.SubscriptionStore = (*SubscriptionRepository)(nil)

type SubscriptionRepository struct {
	db  *Connection
	now func() time.Time
}

func NewSubscriptionRepository(db *Connection) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:  db,
		now: time.Now,
	}
}

func (r *SubscriptionRepository) InsertSubscriber(ctx context.Context, subscriber domain.NewSubscriber) (uuid.UUID, error) {
	query := `INSERT INTO subscriptions (id, email, name, subscribed_at, status)
			  VALUES ($1, $2, $3, $4, $5)`

	id := uuid.New()
	_, err := r.db.Exec(ctx, query,
		id, subscriber.Email.String(), subscriber.Name.String(), r.now().UTC(), model.SubscriptionStatusPending,
	)
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return uuid.Nil, fmt.Errorf("failed to insert subscriber: %w", model.ErrEmailTaken)
		}
		return uuid.Nil, unavailable("insert subscriber", err)
	}

	return id, nil
}

func (r *SubscriptionRepository) StoreToken(ctx context.Context, subscriberID uuid.UUID, token string) error {
	query := `INSERT INTO subscription_tokens (subscription_token, subscriber_id)
			  VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, token, subscriberID)
	if err != nil {
		switch pgErrorCode(err) {
		case codeUniqueViolation:
			return fmt.Errorf("failed to store subscription token: %w", model.ErrTokenTaken)
		case codeForeignKeyViolation:
			return fmt.Errorf("failed to store subscription token: %w", model.ErrUnknownSubscriber)
		}
		return unavailable("store subscription token", err)
	}

	return nil
}

// ConfirmSubscriber marks the subscriber bound to token as confirmed and
// returns its id. Confirming twice is not an error.
func (r *SubscriptionRepository) ConfirmSubscriber(ctx context.Context, token string) (uuid.UUID, error) {
	query := `UPDATE subscriptions s SET status = $2
			  FROM subscription_tokens t
			  WHERE t.subscription_token = $1 AND t.subscriber_id = s.id
			  RETURNING s.id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, token, model.SubscriptionStatusConfirmed).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, model.ErrUnknownToken
		}
		return uuid.Nil, unavailable("confirm subscriber", err)
	}

	return id, nil
}

func (r *SubscriptionRepository) GetSubscriberByEmail(ctx context.Context, email string) (model.Subscriber, error) {
	query := `SELECT id, email, name, subscribed_at, status
			  FROM subscriptions WHERE email = $1`

	return r.getSubscriber(ctx, "get subscriber by email", query, email)
}

func (r *SubscriptionRepository) GetSubscriberByToken(ctx context.Context, token string) (model.Subscriber, error) {
	query := `SELECT s.id, s.email, s.name, s.subscribed_at, s.status
			  FROM subscriptions s
			  JOIN subscription_tokens t ON t.subscriber_id = s.id
			  WHERE t.subscription_token = $1`

	return r.getSubscriber(ctx, "get subscriber by token", query, token)
}

func (r *SubscriptionRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return unavailable("ping database", err)
	}
	return nil
}

func (r *SubscriptionRepository) getSubscriber(ctx context.Context, action, query string, arg any) (model.Subscriber, error) {
	var s model.Subscriber
	err := r.db.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Email, &s.Name, &s.SubscribedAt, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Subscriber{}, model.ErrNotFound
		}
		return model.Subscriber{}, unavailable(action, err)
	}

	return s, nil
}
