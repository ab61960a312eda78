// Package bus carries match events over an in-process watermill pub/sub so
// that the console renderer and the history recorder consume them off the
// command loop.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/udisondev/skirmish/internal/game/event"
)

// Metadata keys set on every published message.
const (
	metaMatchID = "match_id"
	metaKind    = "kind"
)

// Envelope is an event together with the match it belongs to.
type Envelope struct {
	MatchID string
	Event   event.Event
}

// Handler processes one envelope. Errors are logged; the message is acked
// either way since the in-memory bus would redeliver it forever.
type Handler func(ctx context.Context, env Envelope) error

// Bus publishes events on a single topic.
type Bus struct {
	pubsub *gochannel.GoChannel
	topic  string
}

// New creates an in-memory bus. buffer is the output channel buffer per
// subscriber. Publish waits for subscribers to ack, so events arrive in
// the order they were emitted.
func New(topic string, buffer int64) *Bus {
	logger := watermill.NewStdLogger(false, false)
	cfg := gochannel.Config{
		OutputChannelBuffer:            buffer,
		BlockPublishUntilSubscriberAck: true,
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(cfg, logger),
		topic:  topic,
	}
}

// Topic returns the topic events are published on.
func (b *Bus) Topic() string { return b.topic }

// Publish encodes e as JSON and publishes it.
func (b *Bus) Publish(matchID string, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metaMatchID, matchID)
	msg.Metadata.Set(metaKind, string(e.Kind))

	if err := b.pubsub.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("publishing %s event: %w", e.Kind, err)
	}
	return nil
}

// Sink adapts the bus to a match event sink. Publish failures are logged.
func (b *Bus) Sink(matchID string) func(event.Event) {
	return func(e event.Event) {
		if err := b.Publish(matchID, e); err != nil {
			slog.Error("event not published", "match", matchID, "kind", e.Kind, "error", err)
		}
	}
}

// Subscribe opens a subscription. Call it before publishing: gochannel does
// not replay messages to late subscribers.
func (b *Bus) Subscribe(ctx context.Context) (*Subscription, error) {
	messages, err := b.pubsub.Subscribe(ctx, b.topic)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", b.topic, err)
	}
	return &Subscription{topic: b.topic, messages: messages}, nil
}

// Close shuts the bus down and ends every subscription.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Subscription is an open stream of envelopes.
type Subscription struct {
	topic    string
	messages <-chan *message.Message
}

// Run feeds envelopes to h until the bus closes (nil) or ctx is cancelled
// (ctx.Err()). Undecodable messages are logged and acked.
func (s *Subscription) Run(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-s.messages:
			if !ok {
				slog.Debug("subscription closed", "topic", s.topic)
				return ctx.Err()
			}
			s.handle(ctx, msg, h)
		}
	}
}

func (s *Subscription) handle(ctx context.Context, msg *message.Message, h Handler) {
	var e event.Event
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		slog.Error("dropping undecodable event", "topic", s.topic, "msg_id", msg.UUID, "error", err)
		msg.Ack()
		return
	}

	env := Envelope{MatchID: msg.Metadata.Get(metaMatchID), Event: e}
	if err := h(ctx, env); err != nil {
		slog.Error("failed to handle event", "topic", s.topic, "msg_id", msg.UUID, "error", err)
	}
	msg.Ack()
}
