package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/dmrooms/internal/chat"
)

// respondError maps the core's typed errors onto distinct status codes.
// Storage failures and anything unrecognized become an opaque 500.
func respondError(c *gin.Context, err error) {
	var unknown *chat.UnknownParticipantsError
	switch {
	case errors.Is(err, chat.ErrDuplicateRoom), errors.Is(err, chat.ErrDuplicateUser):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &unknown):
		// Checked before the not-found kinds: a batch failure wraps
		// ErrUserNotFound but is a 422 with the offending ids.
		ids := make([]string, len(unknown.IDs))
		for i, id := range unknown.IDs {
			ids[i] = id.String()
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown participants", "ids": ids})
	case errors.Is(err, chat.ErrRoomNotFound),
		errors.Is(err, chat.ErrUserNotFound),
		errors.Is(err, chat.ErrDirectiveNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrInvalidReference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrEmptyUniqueID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
