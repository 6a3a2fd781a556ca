package chat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrDuplicateRoom     = errors.New("room unique id already taken")
	ErrDuplicateUser     = errors.New("username or email already taken")
	ErrRoomNotFound      = errors.New("room not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDirectiveNotFound = errors.New("directive not found")
	ErrInvalidReference  = errors.New("directive references an unknown room or owner")
	ErrEmptyMessage      = errors.New("directive message is empty")
	ErrEmptyUniqueID     = errors.New("room unique id is empty")
)

// UnknownParticipantsError reports which ids of a batch attach failed to
// resolve. The batch is rolled back as a whole before this is returned.
type UnknownParticipantsError struct {
	IDs []uuid.UUID
}

func (e *UnknownParticipantsError) Error() string {
	return fmt.Sprintf("unknown participants: %v", e.IDs)
}

func (e *UnknownParticipantsError) Unwrap() error { return ErrUserNotFound }

// StorageError wraps an opaque persistence failure. The core does not
// interpret it further; callers unwrap with errors.As when they need the
// underlying driver error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
