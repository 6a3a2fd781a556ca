package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/handlers/dto"
	"github.com/thereayou/dmrooms/internal/middleware"
	"github.com/thereayou/dmrooms/internal/models"
)

const defaultHistoryLimit = 50

type DirectiveHandler struct {
	rooms      *chat.RoomService
	directives *chat.DirectiveService
}

func NewDirectiveHandler(rooms *chat.RoomService, directives *chat.DirectiveService) *DirectiveHandler {
	return &DirectiveHandler{rooms: rooms, directives: directives}
}

// PostDirective records a directive authored by the authenticated user
// in the addressed room.
func (h *DirectiveHandler) PostDirective(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.PostDirectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	directive, err := h.directives.Post(c.Request.Context(), c.Param("uniqueid"), userID, req.Message, req.System)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, formatDirectiveResponse(directive))
}

// GetRoomDirectives reads the room's log, oldest first, with optional
// limit/before pagination. Only members may read it.
func (h *DirectiveHandler) GetRoomDirectives(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	room, err := h.rooms.Find(c.Request.Context(), c.Param("uniqueid"))
	if err != nil {
		respondError(c, err)
		return
	}

	members, err := h.rooms.Participants(c.Request.Context(), room)
	if err != nil {
		respondError(c, err)
		return
	}
	if !isMember(members, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	var before int64
	if raw := c.Query("before"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			before = n
		}
	}

	directives, err := h.directives.ListForRoom(c.Request.Context(), room, limit, before)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.DirectiveResponse, len(directives))
	for i := range directives {
		resp[i] = formatDirectiveResponse(&directives[i])
	}
	c.JSON(http.StatusOK, gin.H{"directives": resp})
}

// GetMyDirectives lists everything the authenticated user authored,
// across all rooms.
func (h *DirectiveHandler) GetMyDirectives(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	directives, err := h.directives.ListForOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.DirectiveResponse, len(directives))
	for i := range directives {
		resp[i] = formatDirectiveResponse(&directives[i])
	}
	c.JSON(http.StatusOK, gin.H{"directives": resp})
}

// MarkSeen flips a directive's seen flag. Safe to repeat.
func (h *DirectiveHandler) MarkSeen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid directive id"})
		return
	}

	directive, err := h.directives.MarkSeen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, formatDirectiveResponse(directive))
}

func isMember(members []models.User, userID uuid.UUID) bool {
	for _, m := range members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

func formatDirectiveResponse(d *models.Directive) dto.DirectiveResponse {
	return dto.DirectiveResponse{
		ID:       d.ID,
		RoomID:   d.RoomID,
		OwnerID:  d.OwnerID,
		Message:  d.Message,
		IsSystem: d.IsSystem,
		IsSeen:   d.IsSeen,
		Created:  d.Created,
		Updated:  d.Updated,
	}
}
