package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/models"
)

// DirectiveService owns the append-only directive log of each room.
// Posting a directive fans it out to every current room participant
// through the dispatcher; delivery never affects persistence.
type DirectiveService struct {
	store      Store
	registry   *Registry
	dispatcher *Dispatcher

	now func() time.Time
}

func NewDirectiveService(store Store, registry *Registry, dispatcher *Dispatcher) *DirectiveService {
	return &DirectiveService{
		store:      store,
		registry:   registry,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Post records a directive authored by owner in the room with the given
// unique id. Both references must resolve to persisted entities;
// otherwise it fails with ErrInvalidReference and nothing is written.
func (s *DirectiveService) Post(ctx context.Context, roomUniqueID string, ownerID uuid.UUID, message string, system bool) (*models.Directive, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	room, err := s.store.RoomByUniqueID(ctx, NormalizeUniqueID(roomUniqueID))
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil, fmt.Errorf("%w: room %q", ErrInvalidReference, roomUniqueID)
		}
		return nil, err
	}
	owner, err := s.store.UserByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("%w: owner %s", ErrInvalidReference, ownerID)
		}
		return nil, err
	}

	now := s.now().Unix()
	directive := &models.Directive{
		RoomID:   room.ID,
		OwnerID:  owner.ID,
		Message:  message,
		IsSystem: system,
		Created:  now,
		Updated:  now,
	}
	if err := s.store.CreateDirective(ctx, directive); err != nil {
		return nil, err
	}

	s.fanout(ctx, room.ID, directive)

	return directive, nil
}

// fanout delivers the directive to the live handles of every current
// room member. A member without a handle is offline; nothing is queued
// for them. Dispatch failures are swallowed at the dispatch boundary.
func (s *DirectiveService) fanout(ctx context.Context, roomID uuid.UUID, directive *models.Directive) {
	members, err := s.store.Participants(ctx, roomID)
	if err != nil {
		s.dispatcher.logf("directive fan-out: listing participants of room %s: %v", roomID, err)
		return
	}
	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	s.dispatcher.NotifyLog(s.registry.HandlesFor(ids), *directive)
}

// MarkSeen flips the directive's seen flag and advances Updated.
// Calling it on an already-seen directive is safe; the flag stays true
// and Updated is refreshed.
func (s *DirectiveService) MarkSeen(ctx context.Context, id uuid.UUID) (*models.Directive, error) {
	directive, err := s.store.DirectiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	directive.IsSeen = true
	directive.Updated = s.now().Unix()
	if err := s.store.SaveDirective(ctx, directive); err != nil {
		return nil, err
	}
	return directive, nil
}

// ListForRoom reads the room's log, oldest first. limit <= 0 returns
// everything; before > 0 restricts to entries created before that epoch
// second.
func (s *DirectiveService) ListForRoom(ctx context.Context, room *models.Room, limit int, before int64) ([]models.Directive, error) {
	return s.store.DirectivesByRoom(ctx, room.ID, limit, before)
}

// ListForOwner returns every directive the participant authored, across
// all rooms, oldest first.
func (s *DirectiveService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Directive, error) {
	return s.store.DirectivesByOwner(ctx, ownerID)
}
