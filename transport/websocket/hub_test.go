package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	// Create a mock client
	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	// Register the client
	hub.registerClient(client)

	// Check if session was created
	if _, exists := hub.sessions["test-session"]; !exists {
		t.Error("Session was not created")
	}

	// Check if client was added to session
	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}

	// Check session count
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	// Register then unregister
	hub.registerClient(client)
	hub.unregisterClient(client)

	// Check if session was cleaned up
	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	// Create multiple clients for the same session
	client1 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	client2 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}

	// Register both clients
	hub.registerClient(client1)
	hub.registerClient(client2)

	// Check session has 2 clients
	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	// Unregister one client
	hub.unregisterClient(client1)

	// Session should still exist with 1 client
	if len(hub.sessions[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", len(hub.sessions[sessionID]))
	}

	// Check the right client remains
	if !hub.sessions[sessionID][client2] {
		t.Error("Wrong client was removed from session")
	}
}

func TestBroadcastMessageRoutesBySession(t *testing.T) {
	hub := NewHub()

	watcher := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte, 4)}
	other := &Client{hub: hub, sessionID: "zzzz", send: make(chan []byte, 4)}
	hub.registerClient(watcher)
	hub.registerClient(other)

	hub.broadcastMessage(&Message{
		SessionID: "abcd",
		Event:     "game_update",
		Data:      map[string]int{"turn": 3},
	})

	select {
	case raw := <-watcher.send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("invalid JSON on wire: %v", err)
		}
		if msg.SessionID != "abcd" || msg.Event != "game_update" {
			t.Errorf("unexpected envelope: %+v", msg)
		}
	default:
		t.Fatal("watcher should have received the broadcast")
	}

	select {
	case <-other.send:
		t.Error("client on a different session must not receive the broadcast")
	default:
	}
}

func TestBroadcastToSessionViaRunLoop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte, 4)}
	hub.register <- client

	hub.BroadcastToSession("abcd", map[string]string{"reason": "test"})

	select {
	case raw := <-client.send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("invalid JSON on wire: %v", err)
		}
		if msg.Event != "game_update" {
			t.Errorf("expected game_update event, got %q", msg.Event)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestSlowClientDropped(t *testing.T) {
	hub := NewHub()

	// Zero-capacity channel simulates a client that never drains its queue
	client := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte)}
	hub.registerClient(client)

	hub.broadcastMessage(&Message{SessionID: "abcd", Event: "game_update"})

	if _, exists := hub.sessions["abcd"]; exists {
		t.Error("slow client should be unregistered on a full send queue")
	}
}
