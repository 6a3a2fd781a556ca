package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	UniqueID     string   `json:"uniqueid" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Participants []string `json:"participants"`
}

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	UniqueID  string    `json:"uniqueid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachParticipantRequest carries one participant id. The attach
// endpoint accepts either a single object or a list of them.
type AttachParticipantRequest struct {
	ID string `json:"id" binding:"required"`
}

type ParticipantResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Status   string    `json:"status,omitempty"`
}
