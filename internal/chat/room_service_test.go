package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRoomService_CreateThenFind(t *testing.T) {
	req := require.New(t)
	svc := NewRoomService(newFakeStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Abc-123", "Team")
	req.NoError(err)
	req.Equal("abc-123", created.UniqueID)
	req.Equal("Team", created.Name)

	found, err := svc.Find(ctx, "ABC-123")
	req.NoError(err)
	req.Equal(created.ID, found.ID)
	req.Equal("abc-123", found.UniqueID)
}

func TestRoomService_DuplicateUniqueIDIsCaseInsensitive(t *testing.T) {
	req := require.New(t)
	svc := NewRoomService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, "abc-123", "Team")
	req.NoError(err)

	_, err = svc.Create(ctx, "ABC-123", "Other")
	req.ErrorIs(err, ErrDuplicateRoom)

	// The original room is untouched.
	room, err := svc.Find(ctx, "abc-123")
	req.NoError(err)
	req.Equal("Team", room.Name)
}

func TestRoomService_CreateEmptyUniqueID(t *testing.T) {
	svc := NewRoomService(newFakeStore())

	_, err := svc.Create(context.Background(), "   ", "Team")
	require.ErrorIs(t, err, ErrEmptyUniqueID)
}

func TestRoomService_FindMissing(t *testing.T) {
	svc := NewRoomService(newFakeStore())

	_, err := svc.Find(context.Background(), "nope")
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomService_AddParticipantIdempotent(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := NewRoomService(store)
	ctx := context.Background()

	room, err := svc.Create(ctx, "abc-123", "Team")
	req.NoError(err)
	user := store.addUser("u1")

	req.NoError(svc.AddParticipant(ctx, room, user.ID))
	req.NoError(svc.AddParticipant(ctx, room, user.ID))

	members, err := svc.Participants(ctx, room)
	req.NoError(err)
	req.Len(members, 1)
}

func TestRoomService_AddParticipantsBatchIsAtomic(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := NewRoomService(store)
	ctx := context.Background()

	room, err := svc.Create(ctx, "abc-123", "Team")
	req.NoError(err)
	u1 := store.addUser("u1")
	ghost := uuid.New()

	err = svc.AddParticipants(ctx, room, []uuid.UUID{u1.ID, ghost})

	var unknown *UnknownParticipantsError
	req.ErrorAs(err, &unknown)
	req.Equal([]uuid.UUID{ghost}, unknown.IDs)
	req.ErrorIs(err, ErrUserNotFound)

	// Nothing was attached.
	members, err := svc.Participants(ctx, room)
	req.NoError(err)
	req.Empty(members)
}

func TestRoomService_Scenario(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := NewRoomService(store)
	ctx := context.Background()

	room, err := svc.Create(ctx, "abc-123", "Team")
	req.NoError(err)

	u1 := store.addUser("u1")
	u2 := store.addUser("u2")
	u3 := store.addUser("u3")

	err = svc.AddParticipants(ctx, room, []uuid.UUID{u1.ID, u2.ID, u3.ID})
	req.NoError(err)

	members, err := svc.Participants(ctx, room)
	req.NoError(err)
	req.Len(members, 3)

	got := make(map[uuid.UUID]bool)
	for _, m := range members {
		got[m.ID] = true
	}
	req.True(got[u1.ID] && got[u2.ID] && got[u3.ID])

	_, err = svc.Create(ctx, "abc-123", "Other")
	req.True(errors.Is(err, ErrDuplicateRoom))

	room, err = svc.Find(ctx, "abc-123")
	req.NoError(err)
	req.Equal("Team", room.Name)
}

func TestRoomService_RoomsFor(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := NewRoomService(store)
	ctx := context.Background()

	user := store.addUser("u1")
	r1, err := svc.Create(ctx, "room-1", "One")
	req.NoError(err)
	_, err = svc.Create(ctx, "room-2", "Two")
	req.NoError(err)
	req.NoError(svc.AddParticipant(ctx, r1, user.ID))

	rooms, err := svc.RoomsFor(ctx, user.ID)
	req.NoError(err)
	req.Len(rooms, 1)
	req.Equal("room-1", rooms[0].UniqueID)
}
