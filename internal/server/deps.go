// Package server exposes the playback engine over HTTP and WebSocket. It is
// the collaborator layer: it supplies route data, delivers commands, and
// relays per-tick snapshots to whatever UI renders them.
package server

import (
	"github.com/ShauryaBist21/Vehicle-Movement/playback"
)

// Dependencies carries the shared playback session for all handlers.
type Dependencies struct {
	Engine *playback.Engine
	Driver *playback.Driver
	Hub    *Hub
}
