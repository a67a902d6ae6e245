// Package websocket provides WebSocket transport for negotiation games.
//
// The websocket package implements:
//   - Real-time one-way push of game updates
//   - Session-aware WebSocket connections
//   - Automatic broadcasting after each processed turn
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded envelopes:
//
//	{"session_id": "abc1", "event": "game_update", "data": {...}}
//
// The data payload is the ActResult produced by the turn, or the refreshed
// SessionInfo after a reset. Clients do not send game commands over the
// socket; actions go through the REST API and the socket is for watching.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// Updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// from a handler after processing an action
//	hub.BroadcastToSession(sessionID, result)
package websocket
