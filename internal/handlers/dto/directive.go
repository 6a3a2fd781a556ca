package dto

import "github.com/google/uuid"

type PostDirectiveRequest struct {
	Message string `json:"message" binding:"required"`
	System  bool   `json:"system"`
}

type DirectiveResponse struct {
	ID       uuid.UUID `json:"id"`
	RoomID   uuid.UUID `json:"room_id"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Message  string    `json:"message"`
	IsSystem bool      `json:"system"`
	IsSeen   bool      `json:"seen"`
	Created  int64     `json:"created"`
	Updated  int64     `json:"updated"`
}
