package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"trip-planner-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.BaseEvent) error

// Subscriber handles listening for events from NATS.
type Subscriber struct {
	nc   *nats.Conn
	js   jetstream.JetStream
	cons jetstream.ConsumeContext
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe attaches a durable consumer for subject. An empty durable name
// creates an ephemeral consumer that only sees new events.
func (s *Subscriber) Subscribe(ctx context.Context, subject, durableName string, handler EventHandler) error {
	cfg := jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	if durableName == "" {
		cfg.DeliverPolicy = jetstream.DeliverNewPolicy
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, cfg)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	s.cons, err = consumer.Consume(func(msg jetstream.Msg) {
		event, err := DecodeEvent(msg.Data())
		if err != nil {
			log.Printf("Error decoding event on %s: %v", msg.Subject(), err)
			_ = msg.Term() // Malformed, never redeliver
			return
		}

		if err := handler(ctx, event); err != nil {
			log.Printf("Handler failed for event %s: %v", msg.Subject(), err)
			_ = msg.Nak() // Retry
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	log.Printf("Subscribed to %s (durable %q)", subject, durableName)
	return nil
}

// DecodeEvent parses the envelope written by Publisher.
func DecodeEvent(data []byte) (events.BaseEvent, error) {
	var event events.BaseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return event, err
	}
	if event.Type == "" {
		return event, fmt.Errorf("event has no type")
	}
	return event, nil
}

// Close stops consuming and closes the connection.
func (s *Subscriber) Close() {
	if s.cons != nil {
		s.cons.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
