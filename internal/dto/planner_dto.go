package dto

import (
	"time"

	"trip-planner-be/pkg/itinerary"
	"trip-planner-be/pkg/reconcile"

	"github.com/google/uuid"
)

type CreateItineraryRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

// RegenerateRequest reuses the session's last prompt when Prompt is empty.
type RegenerateRequest struct {
	Prompt string `json:"prompt" validate:"omitempty,max=4000"`
}

type SelectTransportRequest struct {
	Mode      string `json:"mode" validate:"required,oneof=flight railway roadway other"`
	Direction string `json:"direction" validate:"required,oneof=outbound inbound"`
	Index     *int   `json:"index" validate:"required,gte=0"`
}

type SelectAccommodationRequest struct {
	Location string `json:"location" validate:"required"`
	Index    *int   `json:"index" validate:"required,gte=0"`
}

type SessionResponse struct {
	Id        uuid.UUID           `json:"id"`
	Prompt    string              `json:"prompt"`
	Itinerary *itinerary.Document `json:"itinerary"`
	Selection reconcile.State     `json:"selection"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// WsInboundMessage is a selection sent by a connected client.
type WsInboundMessage struct {
	Type      string `json:"type"`
	Mode      string `json:"mode,omitempty"`
	Direction string `json:"direction,omitempty"`
	Location  string `json:"location,omitempty"`
	Index     *int   `json:"index,omitempty"`
}

// WsOutboundMessage is pushed to every client watching a session.
type WsOutboundMessage struct {
	Type      string                 `json:"type"`
	SessionId string                 `json:"session_id"`
	Event     string                 `json:"event,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}
