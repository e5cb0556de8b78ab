package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/newsletter-server/internal/model"
)

type fakeJetStream struct {
	streamInfoErr error
	addStreamErr  error
	publishErr    error

	added     *nats.StreamConfig
	published []*nats.Msg
}

func (f *fakeJetStream) StreamInfo(string, ...nats.JSOpt) (*nats.StreamInfo, error) {
	if f.streamInfoErr != nil {
		return nil, f.streamInfoErr
	}
	return &nats.StreamInfo{}, nil
}

func (f *fakeJetStream) AddStream(cfg *nats.StreamConfig, _ ...nats.JSOpt) (*nats.StreamInfo, error) {
	if f.addStreamErr != nil {
		return nil, f.addStreamErr
	}
	f.added = cfg
	return &nats.StreamInfo{Config: *cfg}, nil
}

func (f *fakeJetStream) PublishMsg(m *nats.Msg, _ ...nats.PubOpt) (*nats.PubAck, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.published = append(f.published, m)
	return &nats.PubAck{Stream: "SUBSCRIPTIONS"}, nil
}

func TestNewWithJetStream(t *testing.T) {
	t.Run("stream exists", func(t *testing.T) {
		js := &fakeJetStream{}
		b, err := NewWithJetStream(js, "SUBSCRIPTIONS")
		require.NoError(t, err)
		assert.NotNil(t, b)
		assert.Nil(t, js.added)
	})

	t.Run("stream created", func(t *testing.T) {
		js := &fakeJetStream{streamInfoErr: nats.ErrStreamNotFound}
		_, err := NewWithJetStream(js, "SUBSCRIPTIONS")
		require.NoError(t, err)
		require.NotNil(t, js.added)
		assert.Equal(t, "SUBSCRIPTIONS", js.added.Name)
		assert.Equal(t, []string{"subscription.>"}, js.added.Subjects)
	})

	t.Run("stream info error", func(t *testing.T) {
		js := &fakeJetStream{streamInfoErr: errors.New("timeout")}
		b, err := NewWithJetStream(js, "SUBSCRIPTIONS")
		assert.Nil(t, b)
		assert.ErrorContains(t, err, "failed to ensure stream exists")
	})

	t.Run("add stream error", func(t *testing.T) {
		js := &fakeJetStream{streamInfoErr: nats.ErrStreamNotFound, addStreamErr: errors.New("denied")}
		b, err := NewWithJetStream(js, "SUBSCRIPTIONS")
		assert.Nil(t, b)
		assert.ErrorContains(t, err, "failed to create stream")
	})
}

func TestBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		js := &fakeJetStream{}
		b := &Bus{js: js}
		ev := model.SubscriptionConfirmed{SubscriberID: uuid.New(), OccurredAt: time.Unix(0, 0).UTC()}

		require.NoError(t, b.Publish(ctx, model.SubjectSubscriptionConfirmed, ev))
		require.Len(t, js.published, 1)

		msg := js.published[0]
		assert.Equal(t, model.SubjectSubscriptionConfirmed, msg.Subject)

		var got model.SubscriptionConfirmed
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, ev, got)
	})

	t.Run("publish error", func(t *testing.T) {
		b := &Bus{js: &fakeJetStream{publishErr: errors.New("no responders")}}
		err := b.Publish(ctx, model.SubjectSubscriptionCreated, struct{}{})
		assert.ErrorContains(t, err, "failed to publish event")
	})

	t.Run("unencodable payload", func(t *testing.T) {
		b := &Bus{js: &fakeJetStream{}}
		err := b.Publish(ctx, model.SubjectSubscriptionCreated, make(chan int))
		assert.ErrorContains(t, err, "failed to encode event")
	})

	t.Run("nil bus", func(t *testing.T) {
		var b *Bus
		assert.Error(t, b.Publish(ctx, model.SubjectSubscriptionCreated, struct{}{}))
		assert.NotPanics(t, b.Close)
	})
}

func TestNoop_Publish(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), model.SubjectSubscriptionCreated, struct{}{}))
}
