package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is a named chat context keyed by a caller-supplied unique id.
// UniqueID is stored lowercased and never changes after creation.
type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UniqueID  string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time

	Participants []User      `gorm:"many2many:room_participants"`
	Directives   []Directive `gorm:"foreignKey:RoomID"`
}
