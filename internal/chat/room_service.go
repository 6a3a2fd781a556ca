package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/models"
)

// RoomService owns room records and the membership relation. It is
// stateless; safe for concurrent use as long as the store is.
type RoomService struct {
	store Store
}

func NewRoomService(store Store) *RoomService {
	return &RoomService{store: store}
}

// NormalizeUniqueID maps a caller-supplied unique id to its canonical
// form. Uniqueness is case-insensitive.
func NormalizeUniqueID(uniqueID string) string {
	return strings.ToLower(strings.TrimSpace(uniqueID))
}

// Create persists a new room under the normalized unique id. A second
// create with the same id, in any letter case, fails with
// ErrDuplicateRoom and leaves the existing room untouched.
func (s *RoomService) Create(ctx context.Context, uniqueID, name string) (*models.Room, error) {
	normalized := NormalizeUniqueID(uniqueID)
	if normalized == "" {
		return nil, ErrEmptyUniqueID
	}

	room := &models.Room{
		UniqueID: normalized,
		Name:     name,
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Find looks a room up by its unique id, case-insensitively.
func (s *RoomService) Find(ctx context.Context, uniqueID string) (*models.Room, error) {
	return s.store.RoomByUniqueID(ctx, NormalizeUniqueID(uniqueID))
}

// AddParticipant attaches a user to the room. Attaching an
// already-attached user is a no-op.
func (s *RoomService) AddParticipant(ctx context.Context, room *models.Room, userID uuid.UUID) error {
	return s.store.AttachParticipants(ctx, room.ID, []uuid.UUID{userID})
}

// AddParticipants attaches every user in the batch, atomically. If any
// id does not resolve the whole batch is rolled back and the returned
// *UnknownParticipantsError names the offenders.
func (s *RoomService) AddParticipants(ctx context.Context, room *models.Room, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	return s.store.AttachParticipants(ctx, room.ID, userIDs)
}

// Participants returns the room's current membership. Order is not
// guaranteed; there are no duplicates by construction.
func (s *RoomService) Participants(ctx context.Context, room *models.Room) ([]models.User, error) {
	return s.store.Participants(ctx, room.ID)
}

// RoomsFor returns every room the user belongs to.
func (s *RoomService) RoomsFor(ctx context.Context, userID uuid.UUID) ([]models.Room, error) {
	return s.store.RoomsForUser(ctx, userID)
}
