package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/database"
	"github.com/thereayou/dmrooms/internal/handlers/dto"
	"github.com/thereayou/dmrooms/internal/middleware"
	"github.com/thereayou/dmrooms/internal/presence"
)

type UserHandler struct {
	db      *database.Database
	tracker *presence.Tracker
}

func NewUserHandler(db *database.Database, tracker *presence.Tracker) *UserHandler {
	return &UserHandler{db: db, tracker: tracker}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.UserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"created_at":   user.CreatedAt,
		"last_seen_at": user.LastSeenAt,
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.db.UserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	status, _ := h.tracker.Status(c.Request.Context(), user.ID)

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"status":       status,
		"last_seen_at": user.LastSeenAt,
	})
}

// SetStatus records the authenticated user's presence and notifies
// their roommates.
func (h *UserHandler) SetStatus(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := chat.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tracker.SetStatus(c.Request.Context(), userID, status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
