package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // 512KB
)

// FrameHandler processes client-originated frames. The handlers package
// implements it on top of the chat services.
type FrameHandler interface {
	HandleFrame(client *Client, frame *Frame) error
}

// Client is one websocket connection acting as a live chat.Participant:
// directive logs and presence events fan in through the Participant
// hooks and drain to the peer via the write pump.
type Client struct {
	id     uuid.UUID
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
}

var _ chat.Participant = (*Client)(nil)

func NewClient(conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		id:     uuid.New(),
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

func (c *Client) ParticipantID() uuid.UUID { return c.userID }

// OnDirectiveLogged queues a directive frame for the peer. Delivery is
// best-effort; a full queue drops the frame rather than blocking the
// dispatcher.
func (c *Client) OnDirectiveLogged(d models.Directive) {
	payload := DirectivePayload{
		ID:       d.ID,
		RoomID:   d.RoomID,
		OwnerID:  d.OwnerID,
		Message:  d.Message,
		IsSystem: d.IsSystem,
		IsSeen:   d.IsSeen,
		Created:  d.Created,
		Updated:  d.Updated,
	}
	if err := c.queue(FrameDirective, "", payload); err != nil {
		log.Printf("ws: client %s: dropping directive %s: %v", c.id, d.ID, err)
	}
}

func (c *Client) OnEvent(e chat.Event) {
	if err := c.queue(FrameEvent, "", e); err != nil {
		log.Printf("ws: client %s: dropping event: %v", c.id, err)
	}
}

func (c *Client) SendError(msg string) {
	c.queue(FrameError, "", map[string]string{"error": msg})
}

func (c *Client) queue(frameType FrameType, room string, data interface{}) error {
	frame := Frame{
		Type:      frameType,
		Room:      room,
		Timestamp: time.Now(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		frame.Data = raw
	}

	buf, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	select {
	case c.send <- buf:
		return nil
	default:
		return ErrQueueFull
	}
}

// ReadPump reads frames from the peer until the connection drops, then
// runs cleanup (registry detach, presence update).
func (c *Client) ReadPump(handler FrameHandler, cleanup func()) {
	defer func() {
		cleanup()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame Frame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws: client %s: %v", c.id, err)
			}
			break
		}

		if frame.Type == FramePong {
			continue
		}

		if handler != nil {
			if err := handler.HandleFrame(c, &frame); err != nil {
				log.Printf("ws: client %s: frame %s: %v", c.id, frame.Type, err)
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump drains the send queue to the peer and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case buf, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.WriteMessage(websocket.TextMessage, buf)

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close releases the send queue; WritePump exits on the closed channel.
func (c *Client) Close() {
	close(c.send)
}
