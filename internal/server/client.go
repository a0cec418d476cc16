package server

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shelterrights/shelterrights-api/internal/stats"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 4096
	maxPendingAsks = 8
)

// Client is one websocket session. Read parses frames and queues asks,
// serveAsks answers them one at a time and Write owns the connection's
// writer.
type Client struct {
	conn     *websocket.Conn
	hub      *Hub
	log      *zap.Logger
	userId   uuid.UUID
	send     chan *ServerMessage
	asks     chan *ClientMessage
	stop     chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewClient(userId uuid.UUID, conn *websocket.Conn, hub *Hub, l *zap.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		conn:   conn,
		hub:    hub,
		log:    l.With(zap.String("user_id", userId.String())),
		userId: userId,
		send:   make(chan *ServerMessage, 256),
		asks:   make(chan *ClientMessage, maxPendingAsks),
		stop:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Client) Write() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.log.Debug("write exiting")
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			bytes, err := serializeMessage(msg)
			if err != nil {
				c.log.Error("failed to serialize message", zap.Error(err))
				continue
			}

			if !c.sendMessage(websocket.TextMessage, bytes) {
				return
			}
		case <-c.stop:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		case <-ticker.C:
			if !c.sendMessage(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

func (c *Client) Read() {
	defer func() {
		c.conn.Close()
		c.cleanup()
		c.log.Debug("read exiting")
	}()

	go c.serveAsks()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.log.Warn("ws read", zap.Error(err))
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Debug("error parsing message", zap.Error(err))
			c.queueMessage(ErrInvalidMessage(-1))
			continue
		}
		msg.Timestamp = Now()

		switch {
		case msg.Ask == nil:
			c.queueMessage(ErrInvalidMessage(msg.Id))
		case strings.TrimSpace(msg.Ask.Message) == "" || strings.TrimSpace(msg.Ask.State) == "":
			c.queueMessage(ErrBadRequest(msg.Id, "message and state are required"))
		default:
			select {
			case c.asks <- &msg:
			default:
				c.log.Warn("ask queue full", zap.Int("id", msg.Id))
				c.queueMessage(ErrServiceUnavailable(msg.Id))
			}
		}
	}
}

func (c *Client) serveAsks() {
	for {
		select {
		case msg := <-c.asks:
			c.answer(msg)
		case <-c.stop:
			return
		}
	}
}

func (c *Client) answer(msg *ClientMessage) {
	text, err := c.hub.assistant.Answer(c.ctx, c.userId, msg.Ask.State, msg.Ask.Message)
	if err != nil {
		if c.ctx.Err() != nil {
			return
		}
		c.log.Error("failed to answer ask", zap.Int("id", msg.Id), zap.Error(err))
		c.queueMessage(ErrInternalError(msg.Id))
		return
	}

	c.hub.stats.Incr(stats.AssistantMessages)
	c.queueMessage(NoErrOK(msg.Id, map[string]any{"response": text}))
}

func (c *Client) queueMessage(msg *ServerMessage) bool {
	select {
	case c.send <- msg:
	default:
		c.log.Warn("dropping message, send queue is full", zap.Int("id", msg.Id))
		return false
	}

	return true
}

func serializeMessage(msg *ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}

func (c *Client) sendMessage(msgType int, msg []byte) bool {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(msgType, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			c.log.Warn("write message", zap.Error(err))
		}
		return false
	}

	return true
}

func (c *Client) stopClient() {
	c.stopOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
		close(c.stop)
	})
}

func (c *Client) cleanup() {
	c.hub.DeRegisterClient(c)
	c.stopClient()
}
