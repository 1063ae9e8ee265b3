package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// unsubscriber is the slice of the event-bus subscription the teardown
// path needs.
type unsubscriber interface {
	Unsubscribe() error
}

// trendsClient is one websocket subscriber of the live keyword-snapshot
// stream.
type trendsClient struct {
	conn *websocket.Conn
	send chan []byte
	sub  unsubscriber
	log  *logrus.Logger

	// closeOnce serializes teardown; both pumps call close on the way
	// out, usually at the same time after a peer disconnect.
	closeOnce sync.Once
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 1024,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// TrendsWebSocketHandler upgrades the connection and relays every
// keyword-snapshot event published on the given subject. Requires a live
// event bus; without one the endpoint reports 503.
func TrendsWebSocketHandler(natsConn *nats.Conn, topic string, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if natsConn == nil {
			http.Error(w, "Event bus not configured", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Warn("failed to upgrade to websocket")
			return
		}

		client := &trendsClient{
			conn: conn,
			send: make(chan []byte, 16),
			log:  log,
		}

		sub, err := natsConn.Subscribe(topic, func(msg *nats.Msg) {
			select {
			case client.send <- msg.Data:
			default:
				// Slow consumer, drop the snapshot. The next one
				// supersedes it anyway.
			}
		})
		if err != nil {
			log.WithError(err).Warn("failed to subscribe to snapshot topic")
			conn.Close()
			return
		}
		client.sub = sub

		go client.writePump()
		go client.readPump()

		log.WithField("remote", r.RemoteAddr).Info("websocket trends subscriber connected")
	}
}

// readPump discards client input and detects disconnects.
func (c *trendsClient) readPump() {
	config := DefaultWebSocketConfig()

	defer c.close()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("websocket read error")
			}
			break
		}
	}
}

// writePump forwards snapshots to the peer and keeps the connection
// alive with pings.
func (c *trendsClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *trendsClient) close() {
	c.closeOnce.Do(func() {
		if c.sub != nil {
			c.sub.Unsubscribe()
		}
		c.conn.Close()
	})
}
