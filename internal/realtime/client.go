package realtime

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
)

// Client is one connected push channel (a single tab or device). The
// registry owns the client for its connected lifetime; writes go through the
// send channel so the socket has a single writer.
type Client struct {
	conn *websocket.Conn

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// enqueue hands a frame to the writer, waiting at most timeout for buffer
// space. A false return marks the channel dead; the caller prunes it.
func (c *Client) enqueue(msg []byte, timeout time.Duration) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	case <-timer.C:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writePump drains the send channel onto the socket until the client is
// closed or a write fails.
func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.close()
				return
			}
		}
	}
}
