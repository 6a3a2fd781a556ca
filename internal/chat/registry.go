package chat

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks the live Participant handles attached for each user
// id. One user may hold several handles at once (a websocket session
// per device, a bot); a user with none is simply offline and receives
// no deliveries. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	handles map[uuid.UUID]map[Participant]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[uuid.UUID]map[Participant]struct{}),
	}
}

// Attach registers a live handle under its participant id.
func (r *Registry) Attach(p Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ParticipantID()
	if _, ok := r.handles[id]; !ok {
		r.handles[id] = make(map[Participant]struct{})
	}
	r.handles[id][p] = struct{}{}
}

// Detach removes a handle. Returns true if it was the user's last one.
func (r *Registry) Detach(p Participant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ParticipantID()
	set, ok := r.handles[id]
	if !ok {
		return false
	}
	delete(set, p)
	if len(set) == 0 {
		delete(r.handles, id)
		return true
	}
	return false
}

// HandlesFor collects the live handles of the given user ids.
func (r *Registry) HandlesFor(userIDs []uuid.UUID) []Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Participant
	for _, id := range userIDs {
		for p := range r.handles[id] {
			out = append(out, p)
		}
	}
	return out
}

// Online reports whether the user holds at least one live handle.
func (r *Registry) Online(userID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles[userID]) > 0
}
