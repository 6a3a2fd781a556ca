package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/models"
)

// fakeStore is an in-memory Store with the same error contract as the
// Postgres implementation.
var _ Store = (*fakeStore)(nil)

type fakeStore struct {
	mu         sync.Mutex
	rooms      map[uuid.UUID]*models.Room
	roomsByUID map[string]uuid.UUID
	users      map[uuid.UUID]*models.User
	members    map[uuid.UUID]map[uuid.UUID]struct{}
	directives map[uuid.UUID]*models.Directive
	order      []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:      make(map[uuid.UUID]*models.Room),
		roomsByUID: make(map[string]uuid.UUID),
		users:      make(map[uuid.UUID]*models.User),
		members:    make(map[uuid.UUID]map[uuid.UUID]struct{}),
		directives: make(map[uuid.UUID]*models.Directive),
	}
}

func (f *fakeStore) addUser(username string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now(),
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeStore) CreateRoom(_ context.Context, room *models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.roomsByUID[room.UniqueID]; ok {
		return ErrDuplicateRoom
	}
	room.ID = uuid.New()
	room.CreatedAt = time.Now()
	stored := *room
	f.rooms[room.ID] = &stored
	f.roomsByUID[room.UniqueID] = room.ID
	f.members[room.ID] = make(map[uuid.UUID]struct{})
	return nil
}

func (f *fakeStore) RoomByUniqueID(_ context.Context, uniqueID string) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.roomsByUID[uniqueID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room := *f.rooms[id]
	return &room, nil
}

func (f *fakeStore) RoomsForUser(_ context.Context, userID uuid.UUID) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[userID]; !ok {
		return nil, ErrUserNotFound
	}
	var rooms []models.Room
	for roomID, set := range f.members {
		if _, ok := set[userID]; ok {
			rooms = append(rooms, *f.rooms[roomID])
		}
	}
	return rooms, nil
}

func (f *fakeStore) AttachParticipants(_ context.Context, roomID uuid.UUID, userIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	set, ok := f.members[roomID]
	if !ok {
		return ErrRoomNotFound
	}

	var missing []uuid.UUID
	for _, id := range userIDs {
		if _, ok := f.users[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &UnknownParticipantsError{IDs: missing}
	}

	for _, id := range userIDs {
		set[id] = struct{}{}
	}
	return nil
}

func (f *fakeStore) Participants(_ context.Context, roomID uuid.UUID) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	set, ok := f.members[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	users := make([]models.User, 0, len(set))
	for id := range set {
		users = append(users, *f.users[id])
	}
	return users, nil
}

func (f *fakeStore) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) CreateDirective(_ context.Context, directive *models.Directive) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	directive.ID = uuid.New()
	stored := *directive
	f.directives[directive.ID] = &stored
	f.order = append(f.order, directive.ID)
	return nil
}

func (f *fakeStore) DirectiveByID(_ context.Context, id uuid.UUID) (*models.Directive, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	directive, ok := f.directives[id]
	if !ok {
		return nil, ErrDirectiveNotFound
	}
	copied := *directive
	return &copied, nil
}

func (f *fakeStore) SaveDirective(_ context.Context, directive *models.Directive) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.directives[directive.ID]; !ok {
		return ErrDirectiveNotFound
	}
	stored := *directive
	f.directives[directive.ID] = &stored
	return nil
}

func (f *fakeStore) DirectivesByRoom(_ context.Context, roomID uuid.UUID, limit int, before int64) ([]models.Directive, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Directive
	for _, id := range f.order {
		d := f.directives[id]
		if d.RoomID != roomID {
			continue
		}
		if before > 0 && d.Created >= before {
			continue
		}
		out = append(out, *d)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeStore) DirectivesByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Directive, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Directive
	for _, id := range f.order {
		d := f.directives[id]
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeStore) directiveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.directives)
}
