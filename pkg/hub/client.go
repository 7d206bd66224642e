package hub

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	// writeWait bounds a single frame write. Snapshots arrive many times a
	// second; a connection that cannot take one frame in this long is dead.
	writeWait = 10 * time.Second

	// pongWait and pingPeriod keep idle viewer connections alive through
	// proxies. The ping must go out well before the pong deadline.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// readLimit is small on purpose: signal-stream clients are listeners.
	// Anything beyond control-frame chatter is a misbehaving client.
	readLimit = 4 * 1024
)

// Client is one websocket subscriber with its own buffered send queue.
// The hub closes the queue to disconnect the client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient wraps a connection and registers it with the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	c := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan Message, 256),
	}
	hub.register <- c
	return c
}

// Run drives both pumps and blocks until the connection drops. Call it
// from the websocket handler, which owns the connection's lifetime.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump exists to notice disconnects and answer pings; subscribers are
// not expected to send application data.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains the send queue onto the wire and pings on idle. It is
// the only goroutine allowed to write to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the queue: say goodbye properly.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(msg.wireType(), msg.Data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
