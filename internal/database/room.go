package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/models"
)

// CreateRoom inserts the room. The check-then-insert race on the unique
// id is settled by the unique index: of two concurrent creates exactly
// one wins, the other gets ErrDuplicateRoom.
func (d *Database) CreateRoom(ctx context.Context, room *models.Room) error {
	err := d.db.WithContext(ctx).Create(room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return chat.ErrDuplicateRoom
	}
	if err != nil {
		return &chat.StorageError{Op: "create room", Err: err}
	}
	return nil
}

func (d *Database) RoomByUniqueID(ctx context.Context, uniqueID string) (*models.Room, error) {
	var room models.Room
	err := d.db.WithContext(ctx).First(&room, "unique_id = ?", uniqueID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrRoomNotFound
	}
	if err != nil {
		return nil, &chat.StorageError{Op: "find room", Err: err}
	}
	return &room, nil
}

func (d *Database) RoomsForUser(ctx context.Context, userID uuid.UUID) ([]models.Room, error) {
	var user models.User
	err := d.db.WithContext(ctx).Preload("Rooms").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrUserNotFound
	}
	if err != nil {
		return nil, &chat.StorageError{Op: "list user rooms", Err: err}
	}
	return user.Rooms, nil
}

// AttachParticipants adds users to the room's membership inside one
// transaction. The join table's composite primary key makes the append
// an upsert, so re-attaching an existing member is a no-op rather than
// a duplicate edge.
func (d *Database) AttachParticipants(ctx context.Context, roomID uuid.UUID, userIDs []uuid.UUID) error {
	ids := dedupe(userIDs)

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return chat.ErrRoomNotFound
			}
			return &chat.StorageError{Op: "attach participants", Err: err}
		}

		var users []models.User
		if err := tx.Find(&users, "id IN ?", ids).Error; err != nil {
			return &chat.StorageError{Op: "attach participants", Err: err}
		}
		if len(users) != len(ids) {
			return &chat.UnknownParticipantsError{IDs: missingIDs(ids, users)}
		}

		if err := tx.Model(&room).Association("Participants").Append(&users); err != nil {
			return &chat.StorageError{Op: "attach participants", Err: err}
		}
		return nil
	})
}

func (d *Database) Participants(ctx context.Context, roomID uuid.UUID) ([]models.User, error) {
	var room models.Room
	err := d.db.WithContext(ctx).First(&room, "id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrRoomNotFound
	}
	if err != nil {
		return nil, &chat.StorageError{Op: "list participants", Err: err}
	}

	var users []models.User
	if err := d.db.WithContext(ctx).Model(&room).Association("Participants").Find(&users); err != nil {
		return nil, &chat.StorageError{Op: "list participants", Err: err}
	}
	return users, nil
}

// DeleteRoom removes a room with its log and membership. Administrative
// operation at the storage boundary; the services never call it.
func (d *Database) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Directive{}, "room_id = ?", roomID).Error; err != nil {
			return &chat.StorageError{Op: "delete room", Err: err}
		}

		var room models.Room
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return chat.ErrRoomNotFound
			}
			return &chat.StorageError{Op: "delete room", Err: err}
		}

		if err := tx.Model(&room).Association("Participants").Clear(); err != nil {
			return &chat.StorageError{Op: "delete room", Err: err}
		}

		if err := tx.Delete(&room).Error; err != nil {
			return &chat.StorageError{Op: "delete room", Err: err}
		}
		return nil
	})
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(wanted []uuid.UUID, found []models.User) []uuid.UUID {
	present := make(map[uuid.UUID]struct{}, len(found))
	for _, u := range found {
		present[u.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range wanted {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
