package presence

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/models"
)

const keyPrefix = "presence:"

// roomDirectory is the slice of chat.Store the tracker needs to find a
// user's roommates.
type roomDirectory interface {
	RoomsForUser(ctx context.Context, userID uuid.UUID) ([]models.Room, error)
	Participants(ctx context.Context, roomID uuid.UUID) ([]models.User, error)
}

// Tracker keeps ephemeral participant status in Redis and fans status
// changes out to roommates as events. Status is not part of the room
// data model; a key that expires simply reads back as offline.
type Tracker struct {
	rdb        *redis.Client
	rooms      roomDirectory
	registry   *chat.Registry
	dispatcher *chat.Dispatcher
	ttl        time.Duration
}

func NewTracker(rdb *redis.Client, rooms roomDirectory, registry *chat.Registry, dispatcher *chat.Dispatcher, ttl time.Duration) *Tracker {
	return &Tracker{
		rdb:        rdb,
		rooms:      rooms,
		registry:   registry,
		dispatcher: dispatcher,
		ttl:        ttl,
	}
}

// SetStatus records the user's status and notifies roommates. The
// notification is best-effort: a failure to resolve or deliver never
// undoes the recorded status.
func (t *Tracker) SetStatus(ctx context.Context, userID uuid.UUID, status chat.Status) error {
	key := keyPrefix + userID.String()

	var err error
	if status == chat.StatusOffline {
		err = t.rdb.Del(ctx, key).Err()
	} else {
		err = t.rdb.Set(ctx, key, string(status), t.ttl).Err()
	}
	if err != nil {
		return &chat.StorageError{Op: "set status", Err: err}
	}

	t.notifyRoommates(ctx, userID, status)
	return nil
}

// Status reads the user's current status. A missing or expired key is
// offline.
func (t *Tracker) Status(ctx context.Context, userID uuid.UUID) (chat.Status, error) {
	val, err := t.rdb.Get(ctx, keyPrefix+userID.String()).Result()
	if err == redis.Nil {
		return chat.StatusOffline, nil
	}
	if err != nil {
		return chat.StatusOffline, &chat.StorageError{Op: "get status", Err: err}
	}
	status, err := chat.ParseStatus(val)
	if err != nil {
		return chat.StatusOffline, nil
	}
	return status, nil
}

func (t *Tracker) notifyRoommates(ctx context.Context, userID uuid.UUID, status chat.Status) {
	rooms, err := t.rooms.RoomsForUser(ctx, userID)
	if err != nil {
		log.Printf("presence: listing rooms of %s: %v", userID, err)
		return
	}

	roommates := make(map[uuid.UUID]struct{})
	for _, room := range rooms {
		members, err := t.rooms.Participants(ctx, room.ID)
		if err != nil {
			log.Printf("presence: listing participants of room %s: %v", room.ID, err)
			continue
		}
		for _, m := range members {
			if m.ID != userID {
				roommates[m.ID] = struct{}{}
			}
		}
	}
	if len(roommates) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(roommates))
	for id := range roommates {
		ids = append(ids, id)
	}

	event := chat.Event{
		UserID: userID,
		Status: status,
		At:     time.Now(),
	}
	t.dispatcher.NotifyEvent(t.registry.HandlesFor(ids), event)
}
