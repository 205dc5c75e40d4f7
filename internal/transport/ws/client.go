package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ghostduel/server/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping interval; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size
	maxMessageSize = 4096

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one live websocket connection. It implements arena.Conn: the
// coordinator hands it outbound events, the read pump feeds inbound events
// back through the handler.
type Client struct {
	id     model.ConnectionID
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(id model.ConnectionID, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger.With(slog.String("conn_id", string(id))),
		done:   make(chan struct{}),
	}
}

// ID returns the connection id
func (c *Client) ID() model.ConnectionID {
	return c.id
}

// Send marshals the event into its wire envelope and queues it for the write
// pump. It never blocks: an already-closed connection drops the message, and
// a full buffer closes the connection as a slow consumer.
func (c *Client) Send(event model.Outbound) {
	data, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("marshal outbound event",
			slog.String("event", event.EventName()),
			slog.Any("error", err))
		return
	}
	framed, err := json.Marshal(model.Envelope{Event: event.EventName(), Data: data})
	if err != nil {
		c.logger.Error("marshal envelope",
			slog.String("event", event.EventName()),
			slog.Any("error", err))
		return
	}

	select {
	case <-c.done:
	case c.send <- framed:
	default:
		// A full buffer means the peer has stopped reading; close rather
		// than let it fall arbitrarily far behind the game.
		c.logger.Warn("send buffer full - closing slow consumer",
			slog.String("event", event.EventName()))
		c.close()
	}
}

// close signals the write pump to shut down. Safe to call multiple times.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings. One writer goroutine per connection; the websocket
// supports at most one concurrent writer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("write failed", slog.Any("error", err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// readPump consumes inbound frames and dispatches them until the connection
// drops, then reports the disconnect to the coordinator.
func (c *Client) readPump(h *Handler) {
	defer func() {
		c.close()
		_ = c.conn.Close()
		h.coordinator.Disconnect(c)
		c.logger.Info("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("read failed", slog.Any("error", err))
			}
			return
		}
		h.dispatch(c, message)
	}
}
