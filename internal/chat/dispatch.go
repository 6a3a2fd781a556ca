package chat

import (
	"log"

	"github.com/thereayou/dmrooms/internal/models"
)

// Dispatcher fans notifications out to participants. Delivery is
// best-effort: a panic in one participant's hook is recovered and
// logged, and the remaining participants still get the notification.
// The triggering operation never observes a dispatch failure.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// NotifyLog delivers a freshly recorded directive to each participant,
// once per handle.
func (d *Dispatcher) NotifyLog(participants []Participant, directive models.Directive) {
	for _, p := range participants {
		d.deliver(p, func() { p.OnDirectiveLogged(directive) })
	}
}

// NotifyEvent delivers a presence/state event with the same semantics.
func (d *Dispatcher) NotifyEvent(participants []Participant, event Event) {
	for _, p := range participants {
		d.deliver(p, func() { p.OnEvent(event) })
	}
}

func (d *Dispatcher) deliver(p Participant, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logf("dispatch to participant %s panicked: %v", p.ParticipantID(), r)
		}
	}()
	fn()
}

func (d *Dispatcher) logf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
