package handler

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"lan_relay/internal/config"
	"lan_relay/internal/domain"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"
)

const writeWait = 10 * time.Second

// connection is one peer on the real-time channel. It implements service.Peer.
type connection struct {
	id      string
	conn    *websocket.Conn
	send    chan domain.Event
	session service.SessionService
	ingress service.IngressService
	cfg     config.SessionConfig
	log     logger.Logger

	state     atomic.Int32
	closeOnce sync.Once
	done      chan struct{}
}

func newConnection(
	conn *websocket.Conn,
	session service.SessionService,
	ingress service.IngressService,
	cfg config.SessionConfig,
	log logger.Logger,
) *connection {
	id := uuid.NewString()
	c := &connection{
		id:      id,
		conn:    conn,
		send:    make(chan domain.Event, cfg.PeerBuffer),
		session: session,
		ingress: ingress,
		cfg:     cfg,
		log:     log.With("peer_id", id),
		done:    make(chan struct{}),
	}
	c.state.Store(int32(domain.PeerStateConnecting))
	return c
}

func (c *connection) ID() string {
	return c.id
}

func (c *connection) State() domain.PeerState {
	return domain.PeerState(c.state.Load())
}

// Deliver queues evt for the write pump without blocking.
func (c *connection) Deliver(evt domain.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- evt:
		return true
	default:
		return false
	}
}

func (c *connection) Close() {
	c.closeOnce.Do(func() {
		c.state.Store(int32(domain.PeerStateDisconnected))
		close(c.done)
		_ = c.conn.Close()
	})
}

// serve registers the peer and pumps frames until either side goes away.
func (c *connection) serve() {
	if err := c.session.Connect(c); err != nil {
		c.log.Warn("Peer rejected", "error", err)
		c.Close()
		return
	}
	c.state.CompareAndSwap(int32(domain.PeerStateConnecting), int32(domain.PeerStateConnected))

	go c.writePump()
	c.readPump()
}

func (c *connection) readPump() {
	defer func() {
		c.session.Disconnect(c)
		c.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("Read error", "error", err)
			}
			return
		}
		c.handleFrame(frame)
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case evt := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(evt); err != nil {
				c.log.Debug("Write failed", "event", evt.Name, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait),
			)
			return
		}
	}
}

func (c *connection) handleFrame(frame []byte) {
	var evt domain.Event
	if err := json.Unmarshal(frame, &evt); err != nil {
		c.log.Debug("Invalid frame", "error", err)
		return
	}

	switch evt.Name {
	case domain.EventSendMessage:
		var payload struct {
			Content *string `json:"content"`
		}
		if err := json.Unmarshal(evt.Data, &payload); err != nil || payload.Content == nil {
			c.log.Debug("Malformed send_message", "error", err)
			return
		}
		if _, err := c.ingress.SubmitText(*payload.Content); err != nil {
			c.log.Error("Failed to submit text", "error", err)
		}

	default:
		c.log.Debug("Ignoring unknown event", "event", evt.Name)
	}
}
