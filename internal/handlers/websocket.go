package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/middleware"
	"github.com/thereayou/dmrooms/internal/presence"
	"github.com/thereayou/dmrooms/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades connections and registers each one as a live
// participant handle. While a connection is up, directive logs and
// presence events reach the peer through its handle.
type WSHandler struct {
	registry   *chat.Registry
	tracker    *presence.Tracker
	directives *chat.DirectiveService
}

func NewWSHandler(registry *chat.Registry, tracker *presence.Tracker, directives *chat.DirectiveService) *WSHandler {
	return &WSHandler{registry: registry, tracker: tracker, directives: directives}
}

func (h *WSHandler) Connect(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade: %v", err)
		return
	}

	client := ws.NewClient(conn, userID)
	h.registry.Attach(client)
	if err := h.tracker.SetStatus(context.Background(), userID, chat.StatusOnline); err != nil {
		log.Printf("ws: set online for %s: %v", userID, err)
	}

	go client.WritePump()
	client.ReadPump(h, func() {
		last := h.registry.Detach(client)
		client.Close()
		if last {
			if err := h.tracker.SetStatus(context.Background(), userID, chat.StatusOffline); err != nil {
				log.Printf("ws: set offline for %s: %v", userID, err)
			}
		}
	})
}

// HandleFrame routes client-originated frames to the services.
func (h *WSHandler) HandleFrame(client *ws.Client, frame *ws.Frame) error {
	switch frame.Type {
	case ws.FramePost:
		var payload ws.PostPayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return ws.ErrInvalidFrame
		}
		if frame.Room == "" || payload.Message == "" {
			return ws.ErrInvalidFrame
		}
		_, err := h.directives.Post(context.Background(), frame.Room, client.ParticipantID(), payload.Message, payload.System)
		return err

	case ws.FrameSeen:
		var payload ws.SeenPayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return ws.ErrInvalidFrame
		}
		_, err := h.directives.MarkSeen(context.Background(), payload.ID)
		return err

	case ws.FrameStatus:
		var payload ws.StatusPayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return ws.ErrInvalidFrame
		}
		status, err := chat.ParseStatus(payload.Status)
		if err != nil {
			return err
		}
		return h.tracker.SetStatus(context.Background(), client.ParticipantID(), status)

	default:
		log.Printf("ws: unknown frame type: %s", frame.Type)
		return nil
	}
}
