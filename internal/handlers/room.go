package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/handlers/dto"
	"github.com/thereayou/dmrooms/internal/middleware"
	"github.com/thereayou/dmrooms/internal/models"
	"github.com/thereayou/dmrooms/internal/presence"
)

type RoomHandler struct {
	rooms   *chat.RoomService
	tracker *presence.Tracker
}

func NewRoomHandler(rooms *chat.RoomService, tracker *presence.Tracker) *RoomHandler {
	return &RoomHandler{rooms: rooms, tracker: tracker}
}

// CreateRoom creates a room under a caller-supplied unique id,
// optionally attaching an initial participant list.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.rooms.Create(c.Request.Context(), req.UniqueID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(req.Participants) > 0 {
		ids, err := parseIDs(req.Participants)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := h.rooms.AddParticipants(c.Request.Context(), room, ids); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, formatRoomResponse(room))
}

// GetRoom fetches a room by unique id. An absent room is a 404, never
// an empty one.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.rooms.Find(c.Request.Context(), c.Param("uniqueid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formatRoomResponse(room))
}

// GetMyRooms lists the rooms the authenticated user belongs to.
func (h *RoomHandler) GetMyRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	rooms, err := h.rooms.RoomsFor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = formatRoomResponse(&rooms[i])
	}
	c.JSON(http.StatusOK, gin.H{"rooms": resp})
}

// AttachParticipants attaches one or many participants to a room. The
// body is either a single {"id": ...} object or a list of them; the
// batch form is all-or-nothing.
func (h *RoomHandler) AttachParticipants(c *gin.Context) {
	room, err := h.rooms.Find(c.Request.Context(), c.Param("uniqueid"))
	if err != nil {
		respondError(c, err)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	reqs, err := decodeAttach(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw := make([]string, len(reqs))
	for i, r := range reqs {
		raw[i] = r.ID
	}
	ids, err := parseIDs(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rooms.AddParticipants(c.Request.Context(), room, ids); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, formatRoomResponse(room))
}

// GetParticipants lists the room's current membership with presence.
func (h *RoomHandler) GetParticipants(c *gin.Context) {
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

	resp := make([]dto.ParticipantResponse, len(members))
	for i, m := range members {
		status, _ := h.tracker.Status(c.Request.Context(), m.ID)
		resp[i] = dto.ParticipantResponse{
			ID:       m.ID,
			Username: m.Username,
			Status:   string(status),
		}
	}
	c.JSON(http.StatusOK, gin.H{"participants": resp})
}

func decodeAttach(body []byte) ([]dto.AttachParticipantRequest, error) {
	var list []dto.AttachParticipantRequest
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var single dto.AttachParticipantRequest
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []dto.AttachParticipantRequest{single}, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func formatRoomResponse(room *models.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:        room.ID,
		UniqueID:  room.UniqueID,
		Name:      room.Name,
		CreatedAt: room.CreatedAt,
	}
}
