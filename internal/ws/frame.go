package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FrameType discriminates the envelopes exchanged over a socket.
type FrameType string

const (
	// Server -> client
	FrameDirective FrameType = "directive"
	FrameEvent     FrameType = "event"
	FrameError     FrameType = "error"
	FramePing      FrameType = "ping"

	// Client -> server
	FramePost   FrameType = "post"
	FrameSeen   FrameType = "seen"
	FrameStatus FrameType = "status"
	FramePong   FrameType = "pong"
)

type Frame struct {
	Type      FrameType       `json:"type"`
	Room      string          `json:"room,omitempty"` // room unique id
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// DirectivePayload is the wire shape of a logged directive.
type DirectivePayload struct {
	ID       uuid.UUID `json:"id"`
	RoomID   uuid.UUID `json:"room_id"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Message  string    `json:"message"`
	IsSystem bool      `json:"system"`
	IsSeen   bool      `json:"seen"`
	Created  int64     `json:"created"`
	Updated  int64     `json:"updated"`
}

type PostPayload struct {
	Message string `json:"message"`
	System  bool   `json:"system,omitempty"`
}

type SeenPayload struct {
	ID uuid.UUID `json:"id"`
}

type StatusPayload struct {
	Status string `json:"status"`
}
