package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ITINERARY_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Trip planner event codes.
const (
	TypeItineraryGenerated = "ITINERARY_GENERATED"
	TypeGenerationFailed   = "GENERATION_FAILED"
	TypeSelectionChanged   = "SELECTION_CHANGED"
	TypeSessionReset       = "SESSION_RESET"
	TypeSessionDeleted     = "SESSION_DELETED"
)

// KeySessionID is the payload key every planner event carries.
const KeySessionID = "session_id"

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// SessionID returns the session the event belongs to, or "".
func (e BaseEvent) SessionID() string {
	id, _ := e.Data[KeySessionID].(string)
	return id
}

// NewSessionEvent builds an event scoped to one planner session.
func NewSessionEvent(eventType, sessionID string, data map[string]interface{}) BaseEvent {
	payload := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload[KeySessionID] = sessionID
	return BaseEvent{Type: eventType, Data: payload, OccurredAt: time.Now().UTC()}
}
