package models

import (
	"github.com/google/uuid"
)

// Directive is a single entry in a room's append-only message log.
// Room and owner references are mandatory; a directive never exists
// unattached. Created and Updated are epoch seconds.
type Directive struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID   uuid.UUID `gorm:"not null"`
	OwnerID  uuid.UUID `gorm:"not null"`
	Message  string    `gorm:"not null"`
	IsSystem bool      `gorm:"not null;default:false"`
	IsSeen   bool      `gorm:"not null;default:false"`
	Created  int64     `gorm:"not null"`
	Updated  int64     `gorm:"not null"`

	Room  Room `gorm:"foreignKey:RoomID"`
	Owner User `gorm:"foreignKey:OwnerID"`
}
