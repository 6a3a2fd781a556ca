package presence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/models"
)

// fakeDirectory wires a single shared room.
type fakeDirectory struct {
	room    models.Room
	members []models.User
}

func (f *fakeDirectory) RoomsForUser(_ context.Context, userID uuid.UUID) ([]models.Room, error) {
	for _, m := range f.members {
		if m.ID == userID {
			return []models.Room{f.room}, nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) Participants(_ context.Context, roomID uuid.UUID) ([]models.User, error) {
	if roomID != f.room.ID {
		return nil, chat.ErrRoomNotFound
	}
	return f.members, nil
}

func newTrackerFixture(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *Tracker, *chat.Registry, *fakeDirectory) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	dir := &fakeDirectory{
		room: models.Room{ID: uuid.New(), UniqueID: "abc-123", Name: "Team"},
		members: []models.User{
			{ID: uuid.New(), Username: "u1"},
			{ID: uuid.New(), Username: "u2"},
		},
	}
	registry := chat.NewRegistry()
	tracker := NewTracker(rdb, dir, registry, chat.NewDispatcher(), ttl)
	return mr, tracker, registry, dir
}

func TestTracker_SetAndGetStatus(t *testing.T) {
	req := require.New(t)
	_, tracker, _, dir := newTrackerFixture(t, time.Minute)
	ctx := context.Background()
	user := dir.members[0]

	status, err := tracker.Status(ctx, user.ID)
	req.NoError(err)
	req.Equal(chat.StatusOffline, status)

	req.NoError(tracker.SetStatus(ctx, user.ID, chat.StatusAway))
	status, err = tracker.Status(ctx, user.ID)
	req.NoError(err)
	req.Equal(chat.StatusAway, status)

	req.NoError(tracker.SetStatus(ctx, user.ID, chat.StatusOffline))
	status, err = tracker.Status(ctx, user.ID)
	req.NoError(err)
	req.Equal(chat.StatusOffline, status)
}

func TestTracker_StatusExpiresToOffline(t *testing.T) {
	req := require.New(t)
	mr, tracker, _, dir := newTrackerFixture(t, time.Minute)
	ctx := context.Background()
	user := dir.members[0]

	req.NoError(tracker.SetStatus(ctx, user.ID, chat.StatusOnline))
	mr.FastForward(2 * time.Minute)

	status, err := tracker.Status(ctx, user.ID)
	req.NoError(err)
	req.Equal(chat.StatusOffline, status)
}

func TestTracker_SetStatusNotifiesRoommates(t *testing.T) {
	req := require.New(t)
	_, tracker, registry, dir := newTrackerFixture(t, time.Minute)
	ctx := context.Background()
	u1, u2 := dir.members[0], dir.members[1]

	var mu sync.Mutex
	var events []chat.Event
	record := func(e chat.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	registry.Attach(&chat.FuncParticipant{ID: u1.ID, OnEventFn: record})
	registry.Attach(&chat.FuncParticipant{ID: u2.ID, OnEventFn: record})

	req.NoError(tracker.SetStatus(ctx, u1.ID, chat.StatusAway))

	// Only the roommate is notified, not the user who changed status.
	mu.Lock()
	defer mu.Unlock()
	req.Len(events, 1)
	req.Equal(u1.ID, events[0].UserID)
	req.Equal(chat.StatusAway, events[0].Status)
}
