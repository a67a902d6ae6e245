package engine

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestValidateGameConfig_Default(t *testing.T) {
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidateGameConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantMsg string
	}{
		{"nil handled separately", nil, ""},
		{"empty name", func(c *GameConfig) { c.Name = "" }, "name"},
		{"one player", func(c *GameConfig) { c.NumPlayers = 1 }, "num_players"},
		{"too many players", func(c *GameConfig) { c.NumPlayers = 99 }, "num_players"},
		{"zero turns", func(c *GameConfig) { c.MaxTurns = 0 }, "max_turns"},
		{"no resources", func(c *GameConfig) { c.Resources = nil }, "resource"},
		{"duplicate resource", func(c *GameConfig) {
			c.Resources = append(c.Resources, ResourceSpec{Name: "Wheat", BaseValue: 5})
		}, "duplicate"},
		{"zero base value", func(c *GameConfig) { c.Resources[0].BaseValue = 0 }, "base value"},
		{"negative starting min", func(c *GameConfig) { c.StartingCountMin = -1 }, "starting_count_min"},
		{"inverted count bounds", func(c *GameConfig) { c.StartingCountMax = c.StartingCountMin - 1 }, "starting_count_max"},
		{"spread over 100", func(c *GameConfig) { c.ValuationSpreadPct = 150 }, "valuation_spread_pct"},
		{"zero valuation min", func(c *GameConfig) { c.ValuationMin = 0 }, "valuation_min"},
		{"inverted valuation bounds", func(c *GameConfig) { c.ValuationMax = c.ValuationMin - 1 }, "valuation_max"},
	}

	if err := ValidateGameConfig(nil); err == nil {
		t.Error("nil config passed validation")
	}

	for _, tt := range tests {
		if tt.mutate == nil {
			continue
		}
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatal("invalid config passed validation")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestInitGameStateFromConfig_Bounds(t *testing.T) {
	config := DefaultConfig()
	rng := rand.New(rand.NewPCG(3, 3))
	state := InitGameStateFromConfig(config, rng)

	if state.NumPlayers != config.NumPlayers {
		t.Fatalf("state has %d players, want %d", state.NumPlayers, config.NumPlayers)
	}
	if state.OfferCounter != 0 {
		t.Errorf("offer counter = %d, want 0", state.OfferCounter)
	}
	if len(state.PendingOffers) != 0 {
		t.Errorf("pending offers = %d, want 0", len(state.PendingOffers))
	}

	for pid := 0; pid < config.NumPlayers; pid++ {
		for _, spec := range config.Resources {
			r := Resource(spec.Name)
			count := state.Resources[pid][r]
			if count < config.StartingCountMin || count > config.StartingCountMax {
				t.Errorf("player %d %s count %d outside [%d, %d]",
					pid, r, count, config.StartingCountMin, config.StartingCountMax)
			}
			val := state.Valuations[pid][r]
			if val < config.ValuationMin || val > config.ValuationMax {
				t.Errorf("player %d %s valuation %d outside [%d, %d]",
					pid, r, val, config.ValuationMin, config.ValuationMax)
			}
			spread := spec.BaseValue * config.ValuationSpreadPct / 100
			if val < spec.BaseValue-spread || val > spec.BaseValue+spread {
				t.Errorf("player %d %s valuation %d outside base %d +/- %d",
					pid, r, val, spec.BaseValue, spread)
			}
		}
	}
}

func TestInitGameStateFromConfig_NilUsesDefault(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	state := InitGameStateFromConfig(nil, rng)
	if state.NumPlayers != DefaultConfig().NumPlayers {
		t.Errorf("nil config produced %d players, want default %d",
			state.NumPlayers, DefaultConfig().NumPlayers)
	}
}
