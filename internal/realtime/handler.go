package realtime

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wanderstay-notify/internal/middleware"
)

// UnreadCounter is the slice of the notification service the push channel
// needs for in-band reconciliation.
type UnreadCounter interface {
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Handler struct {
	registry *Registry
	counts   UnreadCounter
}

func NewHandler(registry *Registry, counts UnreadCounter) *Handler {
	return &Handler{registry: registry, counts: counts}
}

type inboundFrame struct {
	Event  string    `json:"event"`
	UserID uuid.UUID `json:"user_id,omitempty"`
}

// Upgrade gates the websocket route; non-upgrade requests get 426.
func (h *Handler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve runs one connection. The transport-level connect does not register
// the channel: the client must send an explicit join frame first, so a
// connection that never identifies itself receives nothing.
func (h *Handler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals(middleware.UserIDContextKey).(uuid.UUID)
		if !ok || userID == uuid.Nil {
			_ = conn.Close()
			return
		}

		client := NewClient(conn)
		go client.writePump()
		defer h.registry.Leave(client)

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(msg, &frame); err != nil {
				continue
			}

			switch frame.Event {
			case "join":
				// A session may only subscribe to its own channel group.
				if frame.UserID != uuid.Nil && frame.UserID != userID {
					continue
				}
				h.registry.Join(userID, client)
				h.reply(client, Frame{Event: EventJoined})

			case "get_unread_count":
				count, err := h.counts.GetUnreadCount(context.Background(), userID)
				if err != nil {
					log.Printf("realtime: unread count for %s: %v", userID, err)
					continue
				}
				h.reply(client, Frame{Event: EventUnreadCount, Payload: fiber.Map{"count": count}})
			}
		}
	})
}

func (h *Handler) reply(c *Client, frame Frame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		return
	}
	c.enqueue(msg, time.Second)
}
