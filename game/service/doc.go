// Package service contains the game business logic shared by every
// transport. It exposes a GameService interface over session management,
// turn processing, observations, transcripts, and configuration, so the
// REST API, MCP server, and CLI all drive games the same way.
package service
