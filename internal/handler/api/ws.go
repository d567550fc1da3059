package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/customD73/picker2/internal/domain/models"
	xlogger "github.com/customD73/picker2/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClient is one connected subscriber. Writes go through a buffered
// channel so a slow reader never blocks a broadcast.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// predictionEvent is the wire envelope pushed to subscribers.
type predictionEvent struct {
	Type        string                   `json:"type"`
	Predictions []*models.GamePrediction `json:"predictions"`
	Timestamp   time.Time                `json:"timestamp"`
}

// Hub fans freshly generated predictions out to websocket subscribers.
type Hub struct {
	logger  *xlogger.Logger
	mutex   sync.RWMutex
	clients map[*wsClient]bool
}

// NewHub creates a new Hub instance.
func NewHub(logger *xlogger.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*wsClient]bool),
	}
}

// ServeWS upgrades the request and subscribes the connection.
func (h *Hub) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 16)}

	h.mutex.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()

	h.logger.Info("ws client connected", xlogger.Int("clients", total))

	go h.writePump(client)
	go h.readPump(client)
	return nil
}

// BroadcastPredictions pushes a prediction batch to every subscriber.
func (h *Hub) BroadcastPredictions(preds []*models.GamePrediction) {
	payload, err := json.Marshal(predictionEvent{
		Type:        "predictions",
		Predictions: preds,
		Timestamp:   time.Now(),
	})
	if err != nil {
		h.logger.Error("ws marshal failed", xlogger.Error(err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// buffer full; the client is too slow, drop this event for it
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) drop(client *wsClient) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mutex.Unlock()
	_ = client.conn.Close()
}

func (h *Hub) writePump(client *wsClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.send:
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.drop(client)
				return
			}
		case <-ticker.C:
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(client)
				return
			}
		}
	}
}

// readPump discards inbound frames; its job is detecting disconnects.
func (h *Hub) readPump(client *wsClient) {
	defer h.drop(client)
	client.conn.SetReadLimit(512)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
