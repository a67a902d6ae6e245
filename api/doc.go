// Package api provides HTTP REST API handlers for negotiation games.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (config_id, seed)
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get the full game state
//   - POST /api/sessions/{id}/act - Submit the current player's action
//   - GET /api/sessions/{id}/observation/{player} - Get a player's view
//   - GET /api/sessions/{id}/transcript - Get the transcript with pagination
//   - POST /api/sessions/{id}/reset - Reroll the session
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Actions are sent as POST with a
// JSON body:
//
//	{
//	  "player": 0,
//	  "action": "[Broadcast: selling Wheat] [Offer to Player 1: 2 Wheat -> 1 Ore]"
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Acting out of turn or after the game ended returns 409 Conflict; an
// unknown player returns 400; an unknown session returns 404.
package api
