package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/models"
)

// Status is a participant's ephemeral presence state. It is carried in
// event payloads only and never persisted with the room data.
type Status string

const (
	StatusOffline Status = "offline"
	StatusOnline  Status = "online"
	StatusAway    Status = "away"
)

// ParseStatus validates a wire-supplied status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOffline, StatusOnline, StatusAway:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Event is a generic presence/state notification fanned out to
// participants alongside the directive log.
type Event struct {
	UserID uuid.UUID `json:"user_id"`
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
}

// Participant is the capability any user-like entity implements to take
// part in rooms: a websocket-backed human client, a bot, a system
// account. Both hooks are fire-and-forget; implementations must not
// assume they run on any particular goroutine.
type Participant interface {
	ParticipantID() uuid.UUID
	OnDirectiveLogged(directive models.Directive)
	OnEvent(event Event)
}

// FuncParticipant adapts plain callbacks into a Participant. Bots and
// in-process system accounts attach to the registry through it.
type FuncParticipant struct {
	ID          uuid.UUID
	OnDirective func(models.Directive)
	OnEventFn   func(Event)
}

func (p *FuncParticipant) ParticipantID() uuid.UUID { return p.ID }

func (p *FuncParticipant) OnDirectiveLogged(d models.Directive) {
	if p.OnDirective != nil {
		p.OnDirective(d)
	}
}

func (p *FuncParticipant) OnEvent(e Event) {
	if p.OnEventFn != nil {
		p.OnEventFn(e)
	}
}
