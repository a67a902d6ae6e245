package engine

import (
	"fmt"
	"math/rand/v2"
)

// DefaultConfig returns the standard three-player game with the classic
// five-resource economy.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "Classic Negotiation",
		Description: "Three players, five resources, twenty-five turns",
		NumPlayers:  3,
		MaxTurns:    25,
		Resources: []ResourceSpec{
			{Name: "Wheat", BaseValue: 5},
			{Name: "Wood", BaseValue: 10},
			{Name: "Sheep", BaseValue: 15},
			{Name: "Brick", BaseValue: 25},
			{Name: "Ore", BaseValue: 40},
		},
		StartingCountMin:   5,
		StartingCountMax:   25,
		ValuationSpreadPct: 20,
		ValuationMin:       5,
		ValuationMax:       40,
	}
}

// ValidateGameConfig checks a configuration for internal consistency.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if config.NumPlayers < MinPlayers || config.NumPlayers > MaxPlayers {
		return fmt.Errorf("num_players must be between %d and %d, got %d", MinPlayers, MaxPlayers, config.NumPlayers)
	}
	if config.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be positive, got %d", config.MaxTurns)
	}
	if len(config.Resources) == 0 {
		return fmt.Errorf("at least one resource is required")
	}
	seen := make(map[string]bool)
	for _, spec := range config.Resources {
		if spec.Name == "" {
			return fmt.Errorf("resource name cannot be empty")
		}
		if seen[spec.Name] {
			return fmt.Errorf("duplicate resource name: %s", spec.Name)
		}
		seen[spec.Name] = true
		if spec.BaseValue <= 0 {
			return fmt.Errorf("resource %s must have a positive base value, got %d", spec.Name, spec.BaseValue)
		}
	}
	if config.StartingCountMin < 0 {
		return fmt.Errorf("starting_count_min cannot be negative, got %d", config.StartingCountMin)
	}
	if config.StartingCountMax < config.StartingCountMin {
		return fmt.Errorf("starting_count_max (%d) cannot be below starting_count_min (%d)",
			config.StartingCountMax, config.StartingCountMin)
	}
	if config.ValuationSpreadPct < 0 || config.ValuationSpreadPct > 100 {
		return fmt.Errorf("valuation_spread_pct must be between 0 and 100, got %d", config.ValuationSpreadPct)
	}
	if config.ValuationMin < 1 {
		return fmt.Errorf("valuation_min must be positive, got %d", config.ValuationMin)
	}
	if config.ValuationMax < config.ValuationMin {
		return fmt.Errorf("valuation_max (%d) cannot be below valuation_min (%d)",
			config.ValuationMax, config.ValuationMin)
	}
	return nil
}

// InitGameStateFromConfig builds a fresh game state: every player gets a
// random starting count per resource and a private valuation drawn around
// the public base value. The rng is owned by the caller so games are
// reproducible from a seed.
func InitGameStateFromConfig(config *GameConfig, rng *rand.Rand) *GameState {
	if config == nil {
		config = DefaultConfig()
	}

	names := make([]Resource, 0, len(config.Resources))
	for _, spec := range config.Resources {
		names = append(names, Resource(spec.Name))
	}

	state := &GameState{
		NumPlayers:    config.NumPlayers,
		ResourceNames: names,
		Resources:     make(map[int]ResourceBundle, config.NumPlayers),
		Valuations:    make(map[int]ResourceBundle, config.NumPlayers),
		PendingOffers: make(map[int]*Offer),
	}

	countRange := config.StartingCountMax - config.StartingCountMin + 1
	for pid := 0; pid < config.NumPlayers; pid++ {
		resources := make(ResourceBundle, len(config.Resources))
		valuations := make(ResourceBundle, len(config.Resources))
		for _, spec := range config.Resources {
			r := Resource(spec.Name)
			resources[r] = config.StartingCountMin + rng.IntN(countRange)
			valuations[r] = rollValuation(spec.BaseValue, config, rng)
		}
		state.Resources[pid] = resources
		state.Valuations[pid] = valuations
	}

	return state
}

// rollValuation draws a private per-unit value around the base value.
func rollValuation(base int, config *GameConfig, rng *rand.Rand) int {
	variation := base * config.ValuationSpreadPct / 100
	low := base - variation
	if low < config.ValuationMin {
		low = config.ValuationMin
	}
	high := base + variation
	if high > config.ValuationMax {
		high = config.ValuationMax
	}
	if high < low {
		high = low
	}
	return low + rng.IntN(high-low+1)
}
