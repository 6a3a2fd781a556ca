package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/models"
)

// Store is the persistence handle the services are parameterized by.
// internal/database implements it on Postgres; tests use an in-memory
// fake. Implementations return the typed errors from this package for
// validation misses and *StorageError for everything else.
type Store interface {
	// CreateRoom persists the room, failing with ErrDuplicateRoom if the
	// unique id is already taken. The uniqueness check and the insert
	// must be atomic.
	CreateRoom(ctx context.Context, room *models.Room) error
	RoomByUniqueID(ctx context.Context, uniqueID string) (*models.Room, error)
	RoomsForUser(ctx context.Context, userID uuid.UUID) ([]models.Room, error)

	// AttachParticipants adds the users to the room's membership,
	// all-or-nothing. Already-attached users are skipped silently;
	// unresolved ids abort the batch with *UnknownParticipantsError.
	AttachParticipants(ctx context.Context, roomID uuid.UUID, userIDs []uuid.UUID) error
	Participants(ctx context.Context, roomID uuid.UUID) ([]models.User, error)

	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	CreateDirective(ctx context.Context, directive *models.Directive) error
	DirectiveByID(ctx context.Context, id uuid.UUID) (*models.Directive, error)
	SaveDirective(ctx context.Context, directive *models.Directive) error
	// DirectivesByRoom returns the room's log ordered by Created
	// ascending. limit <= 0 means no limit; before > 0 restricts to
	// entries created strictly before that epoch second.
	DirectivesByRoom(ctx context.Context, roomID uuid.UUID, limit int, before int64) ([]models.Directive, error)
	DirectivesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Directive, error)
}
