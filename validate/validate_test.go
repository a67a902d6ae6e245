package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `{
  "name": "Test Table",
  "description": "test",
  "num_players": 3,
  "max_turns": 12,
  "resources": [
    {"name": "Wheat", "base_value": 5},
    {"name": "Ore", "base_value": 40}
  ],
  "starting_count_min": 5,
  "starting_count_max": 25,
  "valuation_spread_pct": 20,
  "valuation_min": 5,
  "valuation_max": 40
}`

func TestValidateConfigValid(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "good.json", validConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("expected valid config, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	for _, want := range []string{"✓ Players: 3", "✓ Resources: 2", "✓ Starting counts: 5-25"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing info line %q in %v", want, result.Errors)
		}
	}
}

func TestValidateConfigBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "bad.json", "not json at all")

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("expected invalid result for malformed JSON")
	}
	if !strings.Contains(result.Errors[0], "Invalid JSON") {
		t.Errorf("unexpected error: %v", result.Errors)
	}
}

func TestValidateConfigStructuralError(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "oneplayer.json",
		strings.Replace(validConfig, `"num_players": 3`, `"num_players": 1`, 1))

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("expected invalid result for a 1-player config")
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "num_players") {
		t.Errorf("expected num_players error, got %v", result.Errors)
	}
}

func TestValidateConfigClampedBaseValue(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "clamped.json",
		strings.Replace(validConfig, `{"name": "Ore", "base_value": 40}`, `{"name": "Ore", "base_value": 90}`, 1))

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("expected invalid result when a base value exceeds valuation_max")
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "above valuation_max") {
		t.Errorf("expected clamp error, got %v", result.Errors)
	}
}

func TestValidateConfigShortClock(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "short.json",
		strings.Replace(validConfig, `"max_turns": 12`, `"max_turns": 2`, 1))

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("expected invalid result when max_turns is below num_players")
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "never get a turn") {
		t.Errorf("expected rotation error, got %v", result.Errors)
	}
}

func TestValidateConfigMissingFile(t *testing.T) {
	result := validateConfig("/nonexistent/path.json")
	if result.Valid {
		t.Fatal("expected invalid result for missing file")
	}
}
