// Package mcp provides a Model Context Protocol server for negotiation games.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - game_state: Get inventories, valuations, and pending offers
//   - act: Submit the current player's action string
//   - get_observation: Get a player's accumulated view
//   - transcript: Retrieve the game transcript with pagination
//   - reset_game: Reroll a session from a new seed
//   - list_configs: List available game configurations
//   - game_instructions: Full rules and action grammar
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The MCP layer is a thin client over the REST API: every tool call is
// translated into an HTTP request against the game server, so MCP agents
// and REST clients always observe the same state.
package mcp
