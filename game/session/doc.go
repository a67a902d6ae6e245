// Package session provides session management for negotiation games.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Optional JSON file persistence with crash recovery
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session bundles a game engine, its turn machine, and the per-player
// observation renderer, plus metadata like creation time and last access
// time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and generates them from cryptographic randomness. Lookup
// is case-insensitive.
//
// Persistence:
//
// When constructed with NewManagerWithPersistence, sessions are written to
// JSON files after every change and reloaded lazily on lookup, so a server
// restart does not lose running games. The persisted record covers the
// economy ledger, the turn position, and the outcome; undelivered
// observations are not carried across restarts.
package session
