package session

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/parleygames/parley/game/engine"
)

func TestCreateGeneratesShortID(t *testing.T) {
	m := NewManager()

	sess, err := m.Create("", engine.DefaultConfig(), 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(sess.ID) != 4 {
		t.Errorf("expected 4-character session ID, got %q", sess.ID)
	}
	if sess.Game == nil || sess.Turns == nil || sess.Renderer == nil {
		t.Error("session should be created fully wired")
	}
}

func TestCreateWithExplicitID(t *testing.T) {
	m := NewManager()

	sess, err := m.Create("AB12", engine.DefaultConfig(), 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.ID != "AB12" {
		t.Errorf("expected ID AB12, got %q", sess.ID)
	}

	// Duplicate IDs are rejected case-insensitively
	if _, err := m.Create("ab12", engine.DefaultConfig(), 2); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("expected ErrSessionAlreadyExists, got %v", err)
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	m := NewManager()
	created, _ := m.Create("AB12", engine.DefaultConfig(), 1)

	for _, id := range []string{"AB12", "ab12", "Ab12"} {
		got, err := m.Get(id)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", id, err)
			continue
		}
		if got != created {
			t.Errorf("Get(%q) returned a different session", id)
		}
	}

	if _, err := m.Get("zzzz"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSameSeedSameOpening(t *testing.T) {
	m := NewManager()
	a, _ := m.Create("aaaa", engine.DefaultConfig(), 42)
	b, _ := m.Create("bbbb", engine.DefaultConfig(), 42)
	c, _ := m.Create("cccc", engine.DefaultConfig(), 43)

	if !reflect.DeepEqual(a.Game.State().Resources, b.Game.State().Resources) {
		t.Error("same seed should produce identical starting inventories")
	}
	if !reflect.DeepEqual(a.Game.State().Valuations, b.Game.State().Valuations) {
		t.Error("same seed should produce identical valuations")
	}
	if reflect.DeepEqual(a.Game.State().Resources, c.Game.State().Resources) &&
		reflect.DeepEqual(a.Game.State().Valuations, c.Game.State().Valuations) {
		t.Error("different seeds should produce different openings")
	}
}

func TestDelete(t *testing.T) {
	m := NewManager()
	m.Create("AB12", engine.DefaultConfig(), 1)

	if err := m.Delete("ab12"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get("AB12"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("session should be gone after delete")
	}
	if err := m.Delete("AB12"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetOrCreate(t *testing.T) {
	m := NewManager()

	first, err := m.GetOrCreate("AB12", engine.DefaultConfig(), 1)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := m.GetOrCreate("AB12", engine.DefaultConfig(), 999)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("GetOrCreate should return the existing session")
	}
	if second.Seed != 1 {
		t.Errorf("existing session's seed must not change, got %d", second.Seed)
	}
}

func TestUpdateLastAccessed(t *testing.T) {
	m := NewManager()
	sess, _ := m.Create("AB12", engine.DefaultConfig(), 1)

	before := sess.LastAccessedAt
	time.Sleep(5 * time.Millisecond)
	if err := m.UpdateLastAccessed("ab12"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !sess.LastAccessedAt.After(before) {
		t.Error("LastAccessedAt should advance")
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	m := NewManager()
	stale, _ := m.Create("old1", engine.DefaultConfig(), 1)
	m.Create("new1", engine.DefaultConfig(), 2)

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := m.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 session remaining, got %d", m.Count())
	}
	if _, err := m.Get("old1"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("stale session should be removed")
	}
	if _, err := m.Get("new1"); err != nil {
		t.Errorf("fresh session should survive cleanup: %v", err)
	}
}
