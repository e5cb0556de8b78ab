package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/dtroode/newsletter-server/internal/model"
)

// jetStream is the subset of nats.JetStreamContext used by Bus.
type jetStream interface {
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	PublishMsg(m *nats.Msg, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Bus publishes subscription events to NATS JetStream.
type Bus struct {
	conn *nats.Conn
	js   jetStream
}

var _ model.EventPublisher = (*Bus)(nil)

// New connects to url and makes sure stream captures all subscription subjects.
func New(url, stream string, opts ...nats.Option) (*Bus, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to open jetstream context: %w", err)
	}

	b, err := NewWithJetStream(js, stream)
	if err != nil {
		nc.Close()
		return nil, err
	}
	b.conn = nc

	return b, nil
}

// NewWithJetStream allows injecting a JetStream implementation (used in tests).
func NewWithJetStream(js jetStream, stream string) (*Bus, error) {
	b := &Bus{js: js}
	if err := b.ensureStream(stream); err != nil {
		return nil, fmt.Errorf("failed to ensure stream exists: %w", err)
	}
	return b, nil
}

func (b *Bus) ensureStream(stream string) error {
	_, err := b.js.StreamInfo(stream)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to get stream info: %w", err)
	}

	_, err = b.js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: []string{"subscription.>"},
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// Close drains the underlying connection.
func (b *Bus) Close() {
	if b == nil || b.conn == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

// Publish encodes v as JSON and publishes it to subject. The trace context of
// ctx travels in the message headers.
func (b *Bus) Publish(ctx context.Context, subject string, v any) error {
	if b == nil {
		return errors.New("nil bus")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(http.Header(msg.Header)))

	if _, err := b.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Noop discards events. Used when no bus is configured.
type Noop struct{}

var _ model.EventPublisher = Noop{}

func (Noop) Publish(context.Context, string, any) error {
	return nil
}
