// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"skraper/internal/adapter/events"
	"skraper/internal/logger"
)

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
		MaxMessageSize: 4096,
	}
}

// eventClient relays bus events to one WebSocket connection
type eventClient struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	sub    events.Subscription
	config WebSocketConfig
	once   sync.Once
}

// EventsWebSocketHandler streams every event published on subject to the
// client. Slow clients drop events rather than block publishers.
func EventsWebSocketHandler(bus events.Bus, subject string, allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Warn("Failed to upgrade to WebSocket", zap.Error(err))
			return
		}

		client := &eventClient{
			conn:   conn,
			send:   make(chan []byte, 256),
			done:   make(chan struct{}),
			config: DefaultWebSocketConfig(),
		}

		sub, err := bus.Subscribe(subject, client.enqueue)
		if err != nil {
			logger.Log.Error("Failed to subscribe to scrape events", zap.String("subject", subject), zap.Error(err))
			conn.Close()
			return
		}
		client.sub = sub

		welcome, _ := json.Marshal(map[string]interface{}{
			"type":    "welcome",
			"subject": subject,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
		client.enqueue(welcome)

		go client.writePump()
		go client.readPump()

		logger.Log.Info("WebSocket client connected", zap.String("remote_addr", r.RemoteAddr))
	}
}

// enqueue queues data for the client, dropping it when the buffer is full
func (c *eventClient) enqueue(data []byte) {
	select {
	case <-c.done:
	case c.send <- data:
	default:
		logger.Log.Debug("Dropping event for slow WebSocket client")
	}
}

// readPump discards client messages and keeps the read deadline fresh
func (c *eventClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("WebSocket error", zap.Error(err))
			}
			return
		}
	}
}

// writePump pumps queued events to the WebSocket connection
func (c *eventClient) writePump() {
	ticker := time.NewTicker(c.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close unsubscribes from the bus and closes the connection once
func (c *eventClient) close() {
	c.once.Do(func() {
		if c.sub != nil {
			if err := c.sub.Unsubscribe(); err != nil {
				logger.Log.Warn("Failed to unsubscribe WebSocket client", zap.Error(err))
			}
		}
		close(c.done)
		c.conn.Close()
		logger.Log.Info("WebSocket connection closed")
	})
}

// originChecker allows requests without an Origin header and those from the
// configured origins
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
