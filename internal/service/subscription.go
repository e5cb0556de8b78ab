package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/newsletter-server/internal/domain"
	"github.com/dtroode/newsletter-server/internal/logger"
	"github.com/dtroode/newsletter-server/internal/metrics"
	"github.com/dtroode/newsletter-server/internal/model"
	"github.com/dtroode/newsletter-server/internal/token"
)

const (
	confirmationPath    = "/subscriptions/confirm"
	confirmationSubject = "Welcome!"
)

// SubscriptionConfig holds the deployment-specific settings of the workflow.
type SubscriptionConfig struct {
	// BaseURL is the absolute URL confirmation links are built on.
	BaseURL         string
	DatabaseTimeout time.Duration
	EmailTimeout    time.Duration
}

// Subscription runs the double opt-in workflow: it records pending
// subscribers, issues their confirmation tokens, sends the confirmation email
// and redeems tokens.
type Subscription struct {
	store   model.SubscriptionStore
	tokens  model.TokenGenerator
	email   model.EmailSender
	events  model.EventPublisher
	metrics *metrics.Metrics
	cfg     SubscriptionConfig
	tracer  trace.Tracer
	logger  *logger.Logger
	now     func() time.Time
}

func NewSubscription(
	store model.SubscriptionStore,
	tokens model.TokenGenerator,
	email model.EmailSender,
	events model.EventPublisher,
	metrics *metrics.Metrics,
	cfg SubscriptionConfig,
	logger *logger.Logger,
) *Subscription {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Subscription{
		store:   store,
		tokens:  tokens,
		email:   email,
		events:  events,
		metrics: metrics,
		cfg:     cfg,
		tracer:  otel.Tracer("github.com/dtroode/newsletter-server/internal/service"),
		logger:  logger,
		now:     time.Now,
	}
}

// Subscribe validates the form values, stores a pending subscriber with a
// fresh confirmation token and emails the confirmation link. Every step is
// attempted once; a failure leaves earlier writes in place.
func (s *Subscription) Subscribe(ctx context.Context, name, email string) error {
	ctx, span := s.tracer.Start(ctx, "Subscription.Subscribe", trace.WithAttributes(
		attribute.String("subscriber.email", email),
		attribute.String("subscriber.name", name),
	))
	defer span.End()
	log := s.logger.WithContext(ctx)

	log.Debug("Subscription service: adding a new subscriber",
		"email", email,
		"name", name)

	subscriber, err := domain.ParseNewSubscriber(name, email)
	if err != nil {
		log.Info("Subscription service: rejected subscriber",
			"email", email,
			"error", err.Error())
		return s.fail(span, "validate", err)
	}

	var subscriberID uuid.UUID
	err = s.withTimeout(ctx, s.cfg.DatabaseTimeout, func(ctx context.Context) error {
		var err error
		subscriberID, err = s.store.InsertSubscriber(ctx, subscriber)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			log.Info("Subscription service: email already subscribed",
				"email", subscriber.Email.String())
		} else {
			log.Error("Subscription service: failed to insert subscriber",
				"email", subscriber.Email.String(),
				"error", err.Error())
		}
		return s.fail(span, "insert_subscriber", fmt.Errorf("failed to insert subscriber: %w", err))
	}
	span.SetAttributes(attribute.String("subscriber.id", subscriberID.String()))

	subscriptionToken, err := s.tokens.Generate()
	if err != nil {
		log.Error("Subscription service: failed to generate subscription token",
			"subscriber_id", subscriberID,
			"error", err.Error())
		return s.fail(span, "generate_token", fmt.Errorf("failed to generate subscription token: %w", err))
	}

	err = s.withTimeout(ctx, s.cfg.DatabaseTimeout, func(ctx context.Context) error {
		return s.store.StoreToken(ctx, subscriberID, subscriptionToken)
	})
	if err != nil {
		log.Error("Subscription service: failed to store subscription token",
			"subscriber_id", subscriberID,
			"error", err.Error())
		return s.fail(span, "store_token", fmt.Errorf("failed to store subscription token: %w", err))
	}

	message := confirmationEmail(subscriber.Email.String(), s.confirmationLink(subscriptionToken))
	err = s.withTimeout(ctx, s.cfg.EmailTimeout, func(ctx context.Context) error {
		return s.email.Send(ctx, message)
	})
	if err != nil {
		log.Error("Subscription service: failed to send confirmation email",
			"subscriber_id", subscriberID,
			"email", subscriber.Email.String(),
			"error", err.Error())
		return s.fail(span, "send_email", fmt.Errorf("failed to send confirmation email: %w", err))
	}
	s.metrics.IncrementEmailsSent()
	s.metrics.IncrementSubscriptionsCreated()

	s.publish(ctx, model.SubjectSubscriptionCreated, model.SubscriptionCreated{
		SubscriberID: subscriberID,
		Email:        subscriber.Email.String(),
		OccurredAt:   s.now().UTC(),
	})

	log.Info("Subscription service: subscriber pending confirmation",
		"subscriber_id", subscriberID)

	return nil
}

// Confirm moves the subscriber bound to subscriptionToken to confirmed.
// Redeeming the same token again succeeds without changing anything.
func (s *Subscription) Confirm(ctx context.Context, subscriptionToken string) error {
	ctx, span := s.tracer.Start(ctx, "Subscription.Confirm")
	defer span.End()
	log := s.logger.WithContext(ctx)

	if !token.Valid(subscriptionToken) {
		log.Info("Subscription service: malformed subscription token")
		return s.fail(span, "", model.ErrUnknownToken)
	}

	var subscriberID uuid.UUID
	err := s.withTimeout(ctx, s.cfg.DatabaseTimeout, func(ctx context.Context) error {
		var err error
		subscriberID, err = s.store.ConfirmSubscriber(ctx, subscriptionToken)
		return err
	})
	if errors.Is(err, model.ErrUnknownToken) {
		log.Info("Subscription service: unknown subscription token")
		return s.fail(span, "", err)
	}
	if err != nil {
		log.Error("Subscription service: failed to confirm subscriber",
			"error", err.Error())
		return s.fail(span, "", fmt.Errorf("failed to confirm subscriber: %w", err))
	}
	span.SetAttributes(attribute.String("subscriber.id", subscriberID.String()))
	s.metrics.IncrementSubscriptionsConfirmed()

	s.publish(ctx, model.SubjectSubscriptionConfirmed, model.SubscriptionConfirmed{
		SubscriberID: subscriberID,
		OccurredAt:   s.now().UTC(),
	})

	log.Info("Subscription service: subscriber confirmed",
		"subscriber_id", subscriberID)

	return nil
}

// Ready reports whether the subscription store is reachable.
func (s *Subscription) Ready(ctx context.Context) error {
	return s.withTimeout(ctx, s.cfg.DatabaseTimeout, s.store.Ping)
}

func (s *Subscription) confirmationLink(subscriptionToken string) string {
	return fmt.Sprintf("%s%s?subscription_token=%s", s.cfg.BaseURL, confirmationPath, url.QueryEscape(subscriptionToken))
}

func confirmationEmail(to, link string) model.Email {
	return model.Email{
		To:      to,
		Subject: confirmationSubject,
		HTML: fmt.Sprintf("Welcome to our newsletter!<br />"+
			"Click <a href=\"%s\">here</a> to confirm your subscription.", link),
		Text: fmt.Sprintf("Welcome to our newsletter!\nVisit %s to confirm your subscription.", link),
	}
}

// publish delivers an event without affecting the caller's outcome.
func (s *Subscription) publish(ctx context.Context, subject string, event any) {
	if err := s.events.Publish(ctx, subject, event); err != nil {
		s.metrics.IncrementEventPublishFailures()
		s.logger.WithContext(ctx).Warn("Subscription service: failed to publish event",
			"subject", subject,
			"error", err.Error())
	}
}

// fail records err on span and, for subscribe steps, in the failure counter.
func (s *Subscription) fail(span trace.Span, step string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if step != "" {
		s.metrics.IncrementSubscribeFailure(step)
	}
	return err
}

// withTimeout runs fn under a deadline of d. A zero d means no deadline.
func (s *Subscription) withTimeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	if d <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}
