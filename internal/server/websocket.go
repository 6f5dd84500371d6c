package server

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/ShauryaBist21/Vehicle-Movement/internal/metrics"
	"github.com/ShauryaBist21/Vehicle-Movement/playback"
)

// Hub fans per-tick snapshots out to WebSocket subscribers. Slow consumers
// miss intermediate snapshots rather than stalling the driver.
type Hub struct {
	mu   sync.Mutex
	subs map[chan playback.Snapshot]struct{}
}

// NewHub creates an empty snapshot hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan playback.Snapshot]struct{})}
}

// Broadcast delivers a snapshot to every subscriber without blocking.
func (h *Hub) Broadcast(snap playback.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Subscribe registers a new snapshot channel.
func (h *Hub) Subscribe() chan playback.Snapshot {
	ch := make(chan playback.Snapshot, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a snapshot channel.
func (h *Hub) Unsubscribe(ch chan playback.Snapshot) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// WebSocketHandler streams the snapshot of every tick to the client as JSON.
func WebSocketHandler(hub *Hub) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "addr", remoteAddr)
		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		snapshots := hub.Subscribe()
		defer hub.Unsubscribe(snapshots)

		// Detect client disconnects; inbound payloads are ignored.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()

		pings := time.NewTicker(30 * time.Second)
		defer pings.Stop()

		for {
			select {
			case snap := <-snapshots:
				data, err := json.Marshal(snap)
				if err != nil {
					continue
				}
				if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
					slog.Info("ws client disconnected", "addr", remoteAddr)
					return
				}
			case <-pings.C:
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				slog.Info("ws client disconnected", "addr", remoteAddr)
				return
			}
		}
	}
}
