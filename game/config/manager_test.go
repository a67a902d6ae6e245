package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parleygames/parley/game/engine"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

const classicJSON = `{
  "name": "Classic Negotiation",
  "description": "Three players, five resources",
  "num_players": 3,
  "max_turns": 25,
  "resources": [
    {"name": "Wheat", "base_value": 5},
    {"name": "Wood", "base_value": 10},
    {"name": "Sheep", "base_value": 15},
    {"name": "Brick", "base_value": 25},
    {"name": "Ore", "base_value": 40}
  ],
  "starting_count_min": 5,
  "starting_count_max": 25,
  "valuation_spread_pct": 20,
  "valuation_min": 5,
  "valuation_max": 40
}`

const duelJSON = `{
  "name": "Duel",
  "description": "Two players, quick game",
  "num_players": 2,
  "max_turns": 8,
  "resources": [
    {"name": "Wheat", "base_value": 5},
    {"name": "Ore", "base_value": 40}
  ],
  "starting_count_min": 3,
  "starting_count_max": 10,
  "valuation_spread_pct": 10,
  "valuation_min": 3,
  "valuation_max": 50
}`

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic.json", classicJSON)
	writeConfigFile(t, dir, "duel.json", duelJSON)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m, dir
}

func TestLoadConfig(t *testing.T) {
	m, _ := newTestManager(t)

	config, err := m.LoadConfig("duel")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.NumPlayers != 2 || config.MaxTurns != 8 {
		t.Errorf("unexpected config values: %+v", config)
	}
	if len(config.Resources) != 2 {
		t.Errorf("expected 2 resources, got %d", len(config.Resources))
	}

	// Name with extension resolves to the same file
	withExt, err := m.LoadConfig("duel.json")
	if err != nil {
		t.Fatalf("LoadConfig with extension failed: %v", err)
	}
	if withExt.Name != config.Name {
		t.Error("extension and bare name should load the same config")
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.LoadConfig("nonexistent"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	m, dir := newTestManager(t)
	writeConfigFile(t, dir, "broken.json", `{"name": "Broken", "num_players": 1, "max_turns": 5}`)

	if _, err := m.LoadConfig("broken"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestListConfigsSkipsInvalid(t *testing.T) {
	m, dir := newTestManager(t)
	writeConfigFile(t, dir, "broken.json", `not json`)
	writeConfigFile(t, dir, "notes.txt", `ignored`)

	configs, err := m.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 valid configs, got %d", len(configs))
	}
	ids := map[string]bool{}
	for _, c := range configs {
		ids[c.ConfigID] = true
		if c.NumPlayers == 0 || c.MaxTurns == 0 {
			t.Errorf("config info missing details: %+v", c)
		}
	}
	if !ids["classic"] || !ids["duel"] {
		t.Errorf("expected classic and duel, got %v", ids)
	}
}

func TestGetDefaultPrefersClassic(t *testing.T) {
	m, _ := newTestManager(t)

	def := m.GetDefault()
	if def == nil || def.Name != "Classic Negotiation" {
		t.Errorf("expected classic as default, got %+v", def)
	}
}

func TestGetDefaultFallsBackToBuiltin(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	def := m.GetDefault()
	builtin := engine.DefaultConfig()
	if def == nil || def.NumPlayers != builtin.NumPlayers {
		t.Errorf("expected built-in default, got %+v", def)
	}
}

func TestSetDefault(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.SetDefault("duel"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if m.GetDefault().Name != "Duel" {
		t.Errorf("default not updated: %+v", m.GetDefault())
	}

	if err := m.SetDefault("nonexistent"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	custom := engine.DefaultConfig()
	custom.Name = "Custom Table"
	custom.NumPlayers = 4

	if err := m.SaveConfig("custom", custom); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := m.LoadConfig("custom")
	if err != nil {
		t.Fatalf("LoadConfig after save failed: %v", err)
	}
	if loaded.Name != "Custom Table" || loaded.NumPlayers != 4 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	m, _ := newTestManager(t)

	bad := engine.DefaultConfig()
	bad.MaxTurns = 0
	if err := m.SaveConfig("bad", bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewManagerMissingDir(t *testing.T) {
	if _, err := NewManager("/nonexistent/config/dir"); err == nil {
		t.Error("expected error for missing config directory")
	}
}
