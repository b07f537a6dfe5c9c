package service

import (
	"context"
	"encoding/json"

	"trip-planner-be/internal/constant"
	"trip-planner-be/internal/dto"
	"trip-planner-be/internal/pkg/logger"
	"trip-planner-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// SessionNotifier delivers a rendered message to every client watching a session.
// *websocket.Hub implements it.
type SessionNotifier interface {
	Send(sessionID string, payload []byte)
}

// EventForwarder republishes events outside the process (NATS).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	notifier   SessionNotifier
	forwarder  EventForwarder
	logger     logger.ILogger
}

// NewConsumerService wires the in-process event bus to the websocket hub and,
// when forwarder is non-nil, to the external bus.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	notifier SessionNotifier,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		notifier:   notifier,
		forwarder:  forwarder,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error(constant.ModuleConsumerService, "Failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if sessionID := event.SessionID(); sessionID != "" && cs.notifier != nil {
		payload, err := json.Marshal(outboundMessage(event))
		if err != nil {
			cs.logger.Error(constant.ModuleConsumerService, "Failed to render websocket message", map[string]interface{}{
				"type":  event.Type,
				"error": err.Error(),
			})
		} else {
			cs.notifier.Send(sessionID, payload)
		}
	}

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			// The websocket side already got the event; a lost external copy is not retried.
			cs.logger.Warn(constant.ModuleConsumerService, "Failed to forward event", map[string]interface{}{
				"type":  event.Type,
				"error": err.Error(),
			})
		}
	}

	cs.logger.Debug(constant.ModuleConsumerService, "Event processed", map[string]interface{}{
		"type":       event.Type,
		"session_id": event.SessionID(),
	})
	msg.Ack()
}

func outboundMessage(event events.BaseEvent) dto.WsOutboundMessage {
	msgType := constant.WsTypeSessionUpdated
	switch event.Type {
	case events.TypeGenerationFailed:
		msgType = constant.WsTypeGenerationFailed
	case events.TypeSessionDeleted:
		msgType = constant.WsTypeSessionDeleted
	}

	data := make(map[string]interface{}, len(event.Data))
	for k, v := range event.Data {
		if k != events.KeySessionID {
			data[k] = v
		}
	}
	return dto.WsOutboundMessage{
		Type:      msgType,
		SessionId: event.SessionID(),
		Event:     event.Type,
		Data:      data,
	}
}
